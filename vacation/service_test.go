package vacation_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/vacation-tracker/store/memory"
	"github.com/warp/vacation-tracker/vacation"
)

// plainHasher keeps domain tests free of real key derivation.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, string, error) {
	return "hashed:" + password, "salt", nil
}

func newTestService(t *testing.T) *vacation.Service {
	t.Helper()
	return vacation.NewService(memory.New(), fakeCalendar{}, plainHasher{})
}

func createTestUser(t *testing.T, svc *vacation.Service, allowance int) *vacation.User {
	t.Helper()
	u, err := svc.CreateUser(context.Background(), vacation.NewUser{
		Username:       "hansi",
		Mail:           "hansi@example.com",
		Password:       "secret",
		VacationAmount: allowance,
	})
	require.NoError(t, err)
	return u
}

func TestCreateUser_AppliesDefaults(t *testing.T) {
	// GIVEN: A creation request that only sets the identity fields
	// THEN: Allowance, country, and join date get defaulted

	svc := newTestService(t)
	u, err := svc.CreateUser(context.Background(), vacation.NewUser{
		Username: "hansi",
		Mail:     "hansi@example.com",
		Password: "secret",
	})
	require.NoError(t, err)

	assert.Equal(t, vacation.DefaultVacationAmount, u.VacationAmount)
	assert.Equal(t, vacation.DefaultCountryCode, u.CountryCode)
	assert.False(t, u.JoinDate.IsZero())
	assert.Equal(t, "hashed:secret", u.PassHash)
}

func TestCreateUser_RejectsDuplicateIdentity(t *testing.T) {
	svc := newTestService(t)
	createTestUser(t, svc, 20)

	_, err := svc.CreateUser(context.Background(), vacation.NewUser{
		Username: "hansi",
		Mail:     "other@example.com",
		Password: "secret",
	})
	assert.ErrorIs(t, err, vacation.ErrDuplicateIdentity)

	_, err = svc.CreateUser(context.Background(), vacation.NewUser{
		Username: "other",
		Mail:     "hansi@example.com",
		Password: "secret",
	})
	assert.ErrorIs(t, err, vacation.ErrDuplicateIdentity)
}

func TestRemainingVacation_NoRequestsEqualsAllowance(t *testing.T) {
	svc := newTestService(t)
	u := createTestUser(t, svc, 20)

	got, err := svc.RemainingVacation(context.Background(), u.ID, 2001)
	require.NoError(t, err)
	assert.Equal(t, 20, got.Int())
}

func TestRemainingVacation_UnpersistedUser(t *testing.T) {
	// A zero ID means the entity never went through the store; consulting
	// its balance is a programmer error, not a lookup miss.
	svc := newTestService(t)

	_, err := svc.RemainingVacation(context.Background(), 0, 2001)
	assert.ErrorIs(t, err, vacation.ErrUnrefreshedEntity)
}

func TestRemainingVacation_UnknownUser(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.RemainingVacation(context.Background(), 404, 2001)
	assert.True(t, vacation.IsNotFound(err))
}

func TestCreateVacation_ConsumesBusinessDaysOnly(t *testing.T) {
	// GIVEN: A fresh user with 20 days
	// WHEN: Requesting Monday 2001-01-01 through Sunday 2001-01-07
	// THEN: 5 business days are billed; the weekend is free

	svc := newTestService(t)
	u := createTestUser(t, svc, 20)

	created, err := svc.CreateVacation(context.Background(), u.ID,
		vacation.NewDate(2001, time.January, 1),
		vacation.NewDate(2001, time.January, 7))
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, vacation.StatusPending, created[0].Status)

	remaining, err := svc.RemainingVacation(context.Background(), u.ID, 2001)
	require.NoError(t, err)
	assert.Equal(t, 15, remaining.Int())
}

func TestCreateVacation_ExactExhaustionSucceeds(t *testing.T) {
	// GIVEN: A user with exactly 5 days left
	// WHEN: Requesting a range worth exactly 5 business days
	// THEN: The request is accepted and the balance lands on zero

	svc := newTestService(t)
	u := createTestUser(t, svc, 5)

	_, err := svc.CreateVacation(context.Background(), u.ID,
		vacation.NewDate(2001, time.January, 1),
		vacation.NewDate(2001, time.January, 6))
	require.NoError(t, err)

	remaining, err := svc.RemainingVacation(context.Background(), u.ID, 2001)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining.Int())
}

func TestCreateVacation_OverdraftRollsBack(t *testing.T) {
	// GIVEN: A user with 1 day left after a 4-day request
	// WHEN: Requesting 2 more business days
	// THEN: The creation fails with NotEnoughVacation and nothing of the
	//       failed request survives; the balance stays at 1

	svc := newTestService(t)
	u := createTestUser(t, svc, 5)

	_, err := svc.CreateVacation(context.Background(), u.ID,
		vacation.NewDate(2001, time.January, 1),
		vacation.NewDate(2001, time.January, 5)) // Mon-Thu, 4 days
	require.NoError(t, err)

	created, err := svc.CreateVacation(context.Background(), u.ID,
		vacation.NewDate(2001, time.January, 8),
		vacation.NewDate(2001, time.January, 10)) // Mon-Tue, 2 days
	assert.ErrorIs(t, err, vacation.ErrNotEnoughVacation)
	assert.Empty(t, created)

	var detail *vacation.NotEnoughVacationError
	require.ErrorAs(t, err, &detail)
	assert.Equal(t, 2, detail.Requested.Int())
	assert.Equal(t, 1, detail.Remaining.Int())

	remaining, err := svc.RemainingVacation(context.Background(), u.ID, 2001)
	require.NoError(t, err)
	assert.Equal(t, 1, remaining.Int())

	all, err := svc.ListVacations(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateVacation_ExhaustedBalanceRejectsUpFront(t *testing.T) {
	// An already-exhausted year fails the pre-check with NoMoreVacation
	// before anything is written.

	svc := newTestService(t)
	u := createTestUser(t, svc, 5)

	_, err := svc.CreateVacation(context.Background(), u.ID,
		vacation.NewDate(2001, time.January, 1),
		vacation.NewDate(2001, time.January, 6)) // exactly 5 days
	require.NoError(t, err)

	created, err := svc.CreateVacation(context.Background(), u.ID,
		vacation.NewDate(2001, time.January, 8), vacation.Date{})
	assert.ErrorIs(t, err, vacation.ErrNoMoreVacation)
	assert.Empty(t, created)

	all, err := svc.ListVacations(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateVacation_OmittedEndMeansSingleDay(t *testing.T) {
	svc := newTestService(t)
	u := createTestUser(t, svc, 20)

	created, err := svc.CreateVacation(context.Background(), u.ID,
		vacation.NewDate(2001, time.January, 3), vacation.Date{})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, created[0].Start, created[0].End)
}

func TestCreateVacation_EndBeforeStart(t *testing.T) {
	svc := newTestService(t)
	u := createTestUser(t, svc, 20)

	_, err := svc.CreateVacation(context.Background(), u.ID,
		vacation.NewDate(2001, time.January, 7),
		vacation.NewDate(2001, time.January, 1))
	assert.ErrorIs(t, err, vacation.ErrInvalidRange)
}

func TestCreateVacation_UnknownUser(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateVacation(context.Background(), 404,
		vacation.NewDate(2001, time.January, 1), vacation.Date{})
	assert.True(t, vacation.IsNotFound(err))
}

func TestCreateVacation_CrossYearSplitsPerYear(t *testing.T) {
	// GIVEN: A request spanning New Year's Eve into the next year
	// WHEN: Creating [2002-12-31, 2003-01-01]
	// THEN: Two records are persisted, one per calendar year, each
	//       debited against its own year's balance

	svc := newTestService(t)
	u := createTestUser(t, svc, 20)

	created, err := svc.CreateVacation(context.Background(), u.ID,
		vacation.NewDate(2002, time.December, 31),
		vacation.NewDate(2003, time.January, 1))
	require.NoError(t, err)
	require.Len(t, created, 2)

	assert.Equal(t, 2002, created[0].Year())
	assert.Equal(t, vacation.NewDate(2002, time.December, 31), created[0].End)
	assert.Equal(t, 2003, created[1].Year())
	assert.Equal(t, vacation.NewDate(2003, time.January, 1), created[1].Start)
}

func TestCreateVacation_CrossYearConservesDurationOverWeekendBoundary(t *testing.T) {
	// 2005-12-31 and 2006-01-01 fall on a weekend, so cutting the range
	// there loses no billable day: the split segments together cost the
	// same as the uncut range would.

	start := vacation.NewDate(2005, time.December, 30) // Friday
	end := vacation.NewDate(2006, time.January, 3)     // Tuesday

	svc := newTestService(t)
	u := createTestUser(t, svc, 20)

	created, err := svc.CreateVacation(context.Background(), u.ID, start, end)
	require.NoError(t, err)
	require.Len(t, created, 2)

	uncut := vacation.BusinessDays(start, end, fakeCalendar{}, u.CountryCode)

	total := vacation.ZeroDays()
	for i := range created {
		total = total.Add(created[i].Duration(fakeCalendar{}, u))
	}
	assert.Equal(t, uncut.Int(), total.Int())
}

func TestCreateVacation_CrossYearPartialFailureKeepsEarlierSegments(t *testing.T) {
	// GIVEN: Enough balance for the old year's segment but none for the
	//        new year's
	// WHEN: The second segment fails its overdraft check
	// THEN: The first segment stays persisted and is returned with the error

	svc := newTestService(t)
	u := createTestUser(t, svc, 20)

	// Exhaust 2006 down to 1 remaining day.
	_, err := svc.CreateVacation(context.Background(), u.ID,
		vacation.NewDate(2006, time.January, 9),
		vacation.NewDate(2006, time.February, 3)) // 19 business days
	require.NoError(t, err)

	created, err := svc.CreateVacation(context.Background(), u.ID,
		vacation.NewDate(2005, time.December, 27), // Tuesday
		vacation.NewDate(2006, time.January, 5))   // Wed, 3 days in 2006
	assert.ErrorIs(t, err, vacation.ErrNotEnoughVacation)
	require.Len(t, created, 1)
	assert.Equal(t, 2005, created[0].Year())

	remaining2005, err := svc.RemainingVacation(context.Background(), u.ID, 2005)
	require.NoError(t, err)
	assert.Equal(t, 16, remaining2005.Int()) // Dec 27-30 billed

	remaining2006, err := svc.RemainingVacation(context.Background(), u.ID, 2006)
	require.NoError(t, err)
	assert.Equal(t, 1, remaining2006.Int()) // rollback restored the year
}

func TestConfirmAndDeny_Workflow(t *testing.T) {
	// GIVEN: A pending request
	// WHEN: Denying it with a reason, then confirming it
	// THEN: The final state is confirmed with the reason cleared

	svc := newTestService(t)
	u := createTestUser(t, svc, 20)

	created, err := svc.CreateVacation(context.Background(), u.ID,
		vacation.NewDate(2001, time.January, 1),
		vacation.NewDate(2001, time.January, 5))
	require.NoError(t, err)
	id := created[0].ID

	denied, err := svc.Deny(context.Background(), id, "team offsite that week")
	require.NoError(t, err)
	assert.Equal(t, vacation.StatusDenied, denied.Status)
	assert.Equal(t, "team offsite that week", denied.DenialReason)

	confirmed, err := svc.Confirm(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, vacation.StatusConfirmed, confirmed.Status)
	assert.Empty(t, confirmed.DenialReason)
}

func TestDeny_ReleasesAllowance(t *testing.T) {
	// Denied requests stop consuming allowance, so the freed days can be
	// re-requested immediately.

	svc := newTestService(t)
	u := createTestUser(t, svc, 5)

	created, err := svc.CreateVacation(context.Background(), u.ID,
		vacation.NewDate(2001, time.January, 1),
		vacation.NewDate(2001, time.January, 6)) // all 5 days
	require.NoError(t, err)

	_, err = svc.Deny(context.Background(), created[0].ID, "coverage gap")
	require.NoError(t, err)

	remaining, err := svc.RemainingVacation(context.Background(), u.ID, 2001)
	require.NoError(t, err)
	assert.Equal(t, 5, remaining.Int())

	_, err = svc.CreateVacation(context.Background(), u.ID,
		vacation.NewDate(2001, time.January, 8),
		vacation.NewDate(2001, time.January, 13))
	assert.NoError(t, err)
}

func TestConfirm_UnknownVacation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Confirm(context.Background(), 404)
	assert.True(t, vacation.IsNotFound(err))
}

func TestCreateVacation_ConcurrentRequestsCannotOverdraw(t *testing.T) {
	// GIVEN: 5 remaining days and two concurrent 4-day requests
	// WHEN: Both run the creation protocol at once
	// THEN: Exactly one succeeds; the balance never goes negative

	svc := newTestService(t)
	u := createTestUser(t, svc, 5)

	ranges := []vacation.DateRange{
		{Start: vacation.NewDate(2001, time.January, 1), End: vacation.NewDate(2001, time.January, 5)},
		{Start: vacation.NewDate(2001, time.January, 8), End: vacation.NewDate(2001, time.January, 12)},
	}

	errs := make([]error, len(ranges))
	var wg sync.WaitGroup
	for i, r := range ranges {
		wg.Add(1)
		go func(i int, r vacation.DateRange) {
			defer wg.Done()
			_, errs[i] = svc.CreateVacation(context.Background(), u.ID, r.Start, r.End)
		}(i, r)
	}
	wg.Wait()

	failures := 0
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, vacation.ErrNotEnoughVacation)
			failures++
		}
	}
	assert.Equal(t, 1, failures)

	remaining, err := svc.RemainingVacation(context.Background(), u.ID, 2001)
	require.NoError(t, err)
	assert.Equal(t, 1, remaining.Int())
}
