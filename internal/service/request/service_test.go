package request

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kita-hr/leave-backend-go/internal/domain/quota"
	"github.com/kita-hr/leave-backend-go/internal/domain/request"
	"github.com/kita-hr/leave-backend-go/internal/domain/user"
)

// passTx runs the unit of work without a real transaction.
type passTx struct{}

func (passTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeUserRepo struct {
	users map[string]user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]user.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	u.ID = fmt.Sprintf("u-%d", len(f.users)+1)
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) List(ctx context.Context, activeOnly bool) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		if activeOnly && !u.IsActive {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) ListManagers(ctx context.Context) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		if u.Role == user.RoleManager || u.Role == user.RoleHRAdmin {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u user.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) Deactivate(ctx context.Context, id string) error {
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.IsActive = false
	f.users[id] = u
	for rid, r := range f.users {
		if r.ManagerID != nil && *r.ManagerID == id {
			r.ManagerID = nil
			f.users[rid] = r
		}
	}
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) HasOwnedRecords(ctx context.Context, id string) (bool, error) {
	return false, nil
}

func (f *fakeUserRepo) ReassignReports(ctx context.Context, oldManagerID string, newManagerID *string) (int64, error) {
	var moved int64
	for id, u := range f.users {
		if u.ManagerID != nil && *u.ManagerID == oldManagerID {
			u.ManagerID = newManagerID
			f.users[id] = u
			moved++
		}
	}
	return moved, nil
}

func (f *fakeUserRepo) DeductSickBalance(ctx context.Context, id string, days int) error {
	u, ok := f.users[id]
	if !ok || u.SickBalance < days {
		return user.ErrInsufficientSickBalance
	}
	u.SickBalance -= days
	f.users[id] = u
	return nil
}

type quotaKey struct {
	userID string
	year   int
}

type fakeQuotaRepo struct {
	rows    map[quotaKey]quota.Quota
	lastRun map[string]time.Time
}

func newFakeQuotaRepo() *fakeQuotaRepo {
	return &fakeQuotaRepo{
		rows:    make(map[quotaKey]quota.Quota),
		lastRun: make(map[string]time.Time),
	}
}

func (f *fakeQuotaRepo) GetOrCreate(ctx context.Context, userID string, year int) (quota.Quota, error) {
	k := quotaKey{userID, year}
	if q, ok := f.rows[k]; ok {
		return q, nil
	}
	q := quota.Quota{
		ID:         fmt.Sprintf("q-%s-%d", userID, year),
		UserID:     userID,
		Year:       year,
		LeaveTotal: quota.DefaultLeaveTotal,
	}
	f.rows[k] = q
	return q, nil
}

func (f *fakeQuotaRepo) Get(ctx context.Context, userID string, year int) (quota.Quota, error) {
	q, ok := f.rows[quotaKey{userID, year}]
	if !ok {
		return quota.Quota{}, quota.ErrQuotaNotFound
	}
	return q, nil
}

func (f *fakeQuotaRepo) ApplyDelta(ctx context.Context, userID string, year int, delta quota.Delta) (quota.Quota, error) {
	k := quotaKey{userID, year}
	q, ok := f.rows[k]
	if !ok {
		return quota.Quota{}, quota.ErrInvalidDelta
	}
	leaveUsed := q.LeaveUsed + delta.LeaveUsed
	earned := q.ChangeOffEarned + delta.ChangeOffEarned
	used := q.ChangeOffUsed + delta.ChangeOffUsed
	if leaveUsed < 0 || leaveUsed > q.LeaveTotal || earned < 0 || used < 0 || used > earned {
		return quota.Quota{}, quota.ErrInvalidDelta
	}
	q.LeaveUsed = leaveUsed
	q.ChangeOffEarned = earned
	q.ChangeOffUsed = used
	f.rows[k] = q
	return q, nil
}

func (f *fakeQuotaRepo) IncrementAll(ctx context.Context, year int) (int64, error) {
	var n int64
	for k, q := range f.rows {
		if k.year == year {
			q.LeaveTotal++
			f.rows[k] = q
			n++
		}
	}
	return n, nil
}

func (f *fakeQuotaRepo) ResetAll(ctx context.Context, year, leaveTotal, changeOffEarned int) (int64, error) {
	var n int64
	for k, q := range f.rows {
		if k.year == year {
			q.LeaveTotal = leaveTotal
			q.LeaveUsed = 0
			q.ChangeOffEarned = changeOffEarned
			q.ChangeOffUsed = 0
			f.rows[k] = q
			n++
		}
	}
	return n, nil
}

func (f *fakeQuotaRepo) Summary(ctx context.Context, year int) ([]quota.SummaryRow, error) {
	return nil, nil
}

func (f *fakeQuotaRepo) MarkJobRun(ctx context.Context, name string, now time.Time) (bool, error) {
	last, ok := f.lastRun[name]
	if ok && last.Year() == now.Year() && last.Month() == now.Month() {
		return false, nil
	}
	f.lastRun[name] = now
	return true, nil
}

type fakeRequestRepo struct {
	users *fakeUserRepo
	rows  map[string]request.Request
	seq   int
}

func newFakeRequestRepo(users *fakeUserRepo) *fakeRequestRepo {
	return &fakeRequestRepo{users: users, rows: make(map[string]request.Request)}
}

func (f *fakeRequestRepo) join(r request.Request) request.Request {
	if u, ok := f.users.users[r.UserID]; ok {
		r.OwnerName = &u.Name
		r.OwnerEmail = &u.Email
		r.OwnerDivision = u.Division
		r.OwnerManagerID = u.ManagerID
	}
	return r
}

func (f *fakeRequestRepo) Create(ctx context.Context, r request.Request) (request.Request, error) {
	f.seq++
	r.ID = fmt.Sprintf("req-%d", f.seq)
	r.CreatedAt = time.Now()
	f.rows[r.ID] = r
	return f.join(r), nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id string) (request.Request, error) {
	r, ok := f.rows[id]
	if !ok {
		return request.Request{}, request.ErrRequestNotFound
	}
	return f.join(r), nil
}

func (f *fakeRequestRepo) ListByUser(ctx context.Context, userID string) ([]request.Request, error) {
	var out []request.Request
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, f.join(r))
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) ListPendingForManager(ctx context.Context, managerID string) ([]request.Request, error) {
	var out []request.Request
	for _, r := range f.rows {
		joined := f.join(r)
		if joined.Status == request.StatusPendingManager &&
			joined.OwnerManagerID != nil && *joined.OwnerManagerID == managerID {
			out = append(out, joined)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) ListPendingForHR(ctx context.Context) ([]request.Request, error) {
	var out []request.Request
	for _, r := range f.rows {
		if r.Status == request.StatusPendingHR {
			out = append(out, f.join(r))
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) SetManagerDecision(ctx context.Context, id string, to request.Status, managerID string, at time.Time) (bool, error) {
	r, ok := f.rows[id]
	if !ok || r.Status != request.StatusPendingManager {
		return false, nil
	}
	r.Status = to
	r.ManagerID = &managerID
	r.ManagerDecidedAt = &at
	f.rows[id] = r
	return true, nil
}

func (f *fakeRequestRepo) SetHRDecision(ctx context.Context, id string, to request.Status, hrID string, at time.Time) (bool, error) {
	r, ok := f.rows[id]
	if !ok || r.Status != request.StatusPendingHR {
		return false, nil
	}
	r.Status = to
	r.HRID = &hrID
	r.HRDecidedAt = &at
	f.rows[id] = r
	return true, nil
}

func (f *fakeRequestRepo) SumApprovedDays(ctx context.Context, userID string, year int, t request.Type, reason request.Reason) (int, error) {
	total := 0
	for _, r := range f.rows {
		if r.UserID == userID && r.Type == t && r.Reason == reason &&
			r.Status == request.StatusApproved && r.StartDate.Year() == year {
			total += r.Days()
		}
	}
	return total, nil
}

type fixture struct {
	svc      Service
	users    *fakeUserRepo
	quotas   *fakeQuotaRepo
	requests *fakeRequestRepo

	employee string
	manager  string
	hr       string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	users := newFakeUserRepo()
	quotas := newFakeQuotaRepo()
	requests := newFakeRequestRepo(users)

	managerID := "mgr-1"
	hrID := "hr-1"
	employeeID := "emp-1"

	users.users[managerID] = user.User{
		ID: managerID, Name: "Manager", Email: "manager@example.com",
		Role: user.RoleManager, IsActive: true, SickBalance: user.DefaultSickBalance,
	}
	users.users[hrID] = user.User{
		ID: hrID, Name: "HR", Email: "hr@example.com",
		Role: user.RoleHRAdmin, IsActive: true, SickBalance: user.DefaultSickBalance,
	}
	users.users[employeeID] = user.User{
		ID: employeeID, Name: "Employee", Email: "employee@example.com",
		Role: user.RoleEmployee, IsActive: true, ManagerID: &managerID,
		SickBalance: user.DefaultSickBalance,
	}

	return &fixture{
		svc:      NewService(passTx{}, requests, quotas, users),
		users:    users,
		quotas:   quotas,
		requests: requests,
		employee: employeeID,
		manager:  managerID,
		hr:       hrID,
	}
}

func personalLeave(start, end string) request.SubmitRequest {
	return request.SubmitRequest{
		Type:      string(request.TypeLeave),
		StartDate: start,
		EndDate:   end,
		Reason:    string(request.ReasonPersonal),
	}
}

func TestSubmit_PersonalLeave(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Submit(ctx, f.employee, personalLeave("2026-06-01", "2026-06-05"))
	require.NoError(t, err)

	assert.Equal(t, request.StatusPendingManager, created.Status)
	assert.Equal(t, 5, created.Days())

	// Submission never touches the ledger for leave requests.
	q, err := f.quotas.Get(ctx, f.employee, 2026)
	require.NoError(t, err)
	assert.Equal(t, 0, q.LeaveUsed)
}

func TestSubmit_InsufficientBalanceCreatesNoRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 13 days against a 12-day quota.
	_, err := f.svc.Submit(ctx, f.employee, personalLeave("2026-06-01", "2026-06-13"))
	assert.ErrorIs(t, err, request.ErrInsufficientBalance)
	assert.Empty(t, f.requests.rows)
}

func TestSubmit_InvalidDates(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Submit(context.Background(), f.employee, personalLeave("2026-06-05", "2026-06-01"))
	assert.ErrorIs(t, err, request.ErrInvalidDates)
}

func TestSubmit_NoManagerAssigned(t *testing.T) {
	f := newFixture(t)
	u := f.users.users[f.employee]
	u.ManagerID = nil
	f.users.users[f.employee] = u

	_, err := f.svc.Submit(context.Background(), f.employee, personalLeave("2026-06-01", "2026-06-02"))
	assert.ErrorIs(t, err, user.ErrNoManagerAssigned)
}

func TestSubmit_SickWithoutNoteDeductsAtSubmission(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := request.SubmitRequest{
		Type:      string(request.TypeLeave),
		StartDate: "2026-06-01",
		EndDate:   "2026-06-02",
		Reason:    string(request.ReasonSick),
	}
	_, err := f.svc.Submit(ctx, f.employee, req)
	require.NoError(t, err)

	assert.Equal(t, user.DefaultSickBalance-2, f.users.users[f.employee].SickBalance)
}

func TestSubmit_SickWithNoteRequiresAttachment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := request.SubmitRequest{
		Type:          string(request.TypeLeave),
		StartDate:     "2026-06-01",
		EndDate:       "2026-06-02",
		Reason:        string(request.ReasonSick),
		HasDoctorNote: true,
	}
	_, err := f.svc.Submit(ctx, f.employee, req)
	assert.ErrorIs(t, err, request.ErrMissingAttachment)

	path := "attachments/emp-1/note.pdf"
	req.AttachmentPath = &path
	_, err = f.svc.Submit(ctx, f.employee, req)
	require.NoError(t, err)

	// Doctor note covers it; sick balance is untouched.
	assert.Equal(t, user.DefaultSickBalance, f.users.users[f.employee].SickBalance)
}

func TestSubmit_SickInsufficientBalance(t *testing.T) {
	f := newFixture(t)
	u := f.users.users[f.employee]
	u.SickBalance = 1
	f.users.users[f.employee] = u

	req := request.SubmitRequest{
		Type:      string(request.TypeLeave),
		StartDate: "2026-06-01",
		EndDate:   "2026-06-03",
		Reason:    string(request.ReasonSick),
	}
	_, err := f.svc.Submit(context.Background(), f.employee, req)
	assert.ErrorIs(t, err, user.ErrInsufficientSickBalance)
	assert.Empty(t, f.requests.rows)
}

func TestSubmit_ChangeOffFixesAccrualAtSubmission(t *testing.T) {
	f := newFixture(t)
	loc := "Client site"
	pic := "Jane"

	req := request.SubmitRequest{
		Type:      string(request.TypeChangeOff),
		StartDate: "2026-03-07",
		EndDate:   "2026-03-08",
		Location:  &loc,
		PIC:       &pic,
		Activities: []request.ActivityEntry{
			entry("2026-03-07", "08:00", "18:00"),
			entry("2026-03-08", "08:00", "18:00"),
		},
	}

	// The timesheet upload is mandatory.
	_, err := f.svc.Submit(context.Background(), f.employee, req)
	assert.ErrorIs(t, err, request.ErrMissingAttachment)

	path := "attachments/emp-1/timesheet.pdf"
	req.AttachmentPath = &path
	created, err := f.svc.Submit(context.Background(), f.employee, req)
	require.NoError(t, err)

	assert.Equal(t, 2, created.ChangeOffDays)
	assert.InDelta(t, 20, created.Hours, 0.001)
	assert.Equal(t, request.ReasonChangeOff, created.Reason)
}

func TestManagerDecide_Approve(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Submit(ctx, f.employee, personalLeave("2026-06-01", "2026-06-05"))
	require.NoError(t, err)

	decided, err := f.svc.ManagerDecide(ctx, f.manager, created.ID, true)
	require.NoError(t, err)
	assert.Equal(t, request.StatusPendingHR, decided.Status)
	require.NotNil(t, decided.ManagerDecidedAt)
}

func TestManagerDecide_WrongManager(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	otherManager := "mgr-2"
	f.users.users[otherManager] = user.User{
		ID: otherManager, Name: "Other", Role: user.RoleManager, IsActive: true,
	}

	created, err := f.svc.Submit(ctx, f.employee, personalLeave("2026-06-01", "2026-06-05"))
	require.NoError(t, err)

	_, err = f.svc.ManagerDecide(ctx, otherManager, created.ID, true)
	assert.ErrorIs(t, err, request.ErrNotAuthorized)
}

func TestManagerDecide_AlreadyDecided(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Submit(ctx, f.employee, personalLeave("2026-06-01", "2026-06-05"))
	require.NoError(t, err)

	_, err = f.svc.ManagerDecide(ctx, f.manager, created.ID, false)
	require.NoError(t, err)

	_, err = f.svc.ManagerDecide(ctx, f.manager, created.ID, true)
	assert.ErrorIs(t, err, request.ErrInvalidState)
}

func TestHRDecide_ApprovalMutatesLedgerOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Submit(ctx, f.employee, personalLeave("2026-06-01", "2026-06-05"))
	require.NoError(t, err)

	_, err = f.svc.ManagerDecide(ctx, f.manager, created.ID, true)
	require.NoError(t, err)

	decided, err := f.svc.HRDecide(ctx, f.hr, created.ID, true)
	require.NoError(t, err)
	assert.Equal(t, request.StatusApproved, decided.Status)

	q, err := f.quotas.Get(ctx, f.employee, 2026)
	require.NoError(t, err)
	assert.Equal(t, 5, q.LeaveUsed)
	assert.Equal(t, 7, q.LeaveBalance())

	// A second decision cannot double-charge.
	_, err = f.svc.HRDecide(ctx, f.hr, created.ID, true)
	assert.ErrorIs(t, err, request.ErrInvalidState)

	q, _ = f.quotas.Get(ctx, f.employee, 2026)
	assert.Equal(t, 5, q.LeaveUsed)
}

func TestHRDecide_RejectionLeavesLedgerAlone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Submit(ctx, f.employee, personalLeave("2026-06-01", "2026-06-05"))
	require.NoError(t, err)
	_, err = f.svc.ManagerDecide(ctx, f.manager, created.ID, true)
	require.NoError(t, err)

	decided, err := f.svc.HRDecide(ctx, f.hr, created.ID, false)
	require.NoError(t, err)
	assert.Equal(t, request.StatusRejected, decided.Status)

	q, err := f.quotas.Get(ctx, f.employee, 2026)
	require.NoError(t, err)
	assert.Equal(t, 0, q.LeaveUsed)
}

func TestHRDecide_ApprovedPersonalDaysMatchLedger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	decide := func(start, end string, approve bool) {
		t.Helper()
		created, err := f.svc.Submit(ctx, f.employee, personalLeave(start, end))
		require.NoError(t, err)
		_, err = f.svc.ManagerDecide(ctx, f.manager, created.ID, true)
		require.NoError(t, err)
		_, err = f.svc.HRDecide(ctx, f.hr, created.ID, approve)
		require.NoError(t, err)
	}

	decide("2026-06-01", "2026-06-02", true) // 2 days
	decide("2026-07-01", "2026-07-03", true) // 3 days
	decide("2026-08-03", "2026-08-03", true) // 1 day
	decide("2026-09-01", "2026-09-02", false)

	// The ledger's used counter reconciles exactly with the approved
	// request history; the rejected request contributes nothing.
	sum, err := f.requests.SumApprovedDays(ctx, f.employee, 2026, request.TypeLeave, request.ReasonPersonal)
	require.NoError(t, err)
	assert.Equal(t, 6, sum)

	q, err := f.quotas.Get(ctx, f.employee, 2026)
	require.NoError(t, err)
	assert.Equal(t, sum, q.LeaveUsed)
}

func TestHRDecide_SkipsManagerStage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Submit(ctx, f.employee, personalLeave("2026-06-01", "2026-06-05"))
	require.NoError(t, err)

	// Still PENDING_MANAGER; HR cannot jump the queue.
	_, err = f.svc.HRDecide(ctx, f.hr, created.ID, true)
	assert.ErrorIs(t, err, request.ErrInvalidState)
}

func TestChangeOffLifecycle_EarnsThenSpends(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	loc := "Warehouse"
	pic := "Ops lead"

	// Earn: two qualifying days of overtime duty.
	timesheet := "attachments/emp-1/timesheet.pdf"
	submit := request.SubmitRequest{
		Type:      string(request.TypeChangeOff),
		StartDate: "2026-03-07",
		EndDate:   "2026-03-08",
		Location:  &loc,
		PIC:       &pic,
		Activities: []request.ActivityEntry{
			entry("2026-03-07", "08:00", "18:00"),
			entry("2026-03-08", "08:00", "18:00"),
		},
		AttachmentPath: &timesheet,
	}
	created, err := f.svc.Submit(ctx, f.employee, submit)
	require.NoError(t, err)

	_, err = f.svc.ManagerDecide(ctx, f.manager, created.ID, true)
	require.NoError(t, err)
	_, err = f.svc.HRDecide(ctx, f.hr, created.ID, true)
	require.NoError(t, err)

	q, err := f.quotas.Get(ctx, f.employee, 2026)
	require.NoError(t, err)
	assert.Equal(t, 2, q.ChangeOffEarned)
	assert.Equal(t, 2, q.ChangeOffBalance())

	// Spend: take the earned days as leave.
	spend := request.SubmitRequest{
		Type:      string(request.TypeLeave),
		StartDate: "2026-04-01",
		EndDate:   "2026-04-02",
		Reason:    string(request.ReasonChangeOff),
	}
	spent, err := f.svc.Submit(ctx, f.employee, spend)
	require.NoError(t, err)
	_, err = f.svc.ManagerDecide(ctx, f.manager, spent.ID, true)
	require.NoError(t, err)
	_, err = f.svc.HRDecide(ctx, f.hr, spent.ID, true)
	require.NoError(t, err)

	q, _ = f.quotas.Get(ctx, f.employee, 2026)
	assert.Equal(t, 2, q.ChangeOffUsed)
	assert.Equal(t, 0, q.ChangeOffBalance())

	// Third day is not there to take.
	_, err = f.svc.Submit(ctx, f.employee, request.SubmitRequest{
		Type:      string(request.TypeLeave),
		StartDate: "2026-05-01",
		EndDate:   "2026-05-01",
		Reason:    string(request.ReasonChangeOff),
	})
	assert.ErrorIs(t, err, request.ErrInsufficientBalance)
}

func TestGetByID_Authorization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	otherEmployee := "emp-2"
	mgr := f.manager
	f.users.users[otherEmployee] = user.User{
		ID: otherEmployee, Name: "Other", Role: user.RoleEmployee,
		IsActive: true, ManagerID: &mgr, SickBalance: user.DefaultSickBalance,
	}

	created, err := f.svc.Submit(ctx, f.employee, personalLeave("2026-06-01", "2026-06-05"))
	require.NoError(t, err)

	// Owner sees it.
	_, err = f.svc.GetByID(ctx, f.employee, user.RoleEmployee, created.ID)
	assert.NoError(t, err)

	// A peer does not.
	_, err = f.svc.GetByID(ctx, otherEmployee, user.RoleEmployee, created.ID)
	assert.ErrorIs(t, err, request.ErrNotAuthorized)

	// The assigned manager and HR do.
	_, err = f.svc.GetByID(ctx, f.manager, user.RoleManager, created.ID)
	assert.NoError(t, err)
	_, err = f.svc.GetByID(ctx, f.hr, user.RoleHRAdmin, created.ID)
	assert.NoError(t, err)
}
