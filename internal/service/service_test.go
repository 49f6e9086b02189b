package service

import (
	"blooddonation/internal/config"
	"blooddonation/internal/entity"
	"blooddonation/internal/model"
	"blooddonation/internal/payment"
	"context"
	"errors"
	"testing"
	"time"
)

type fixture struct {
	repo     model.Repository
	guard    *Guard
	users    *UserService
	requests *RequestService
	blogs    *BlogService
	payments *PaymentService
	stats    *StatsService
}

type stubCreator struct{ amount int64 }

func (s *stubCreator) CreateIntent(_ context.Context, amount int64, _ string) (string, error) {
	s.amount = amount
	return "secret", nil
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo, err := model.InitRepository(&config.Config{DBType: model.DBTypeSQLite, DBPath: ":memory:"})
	if err != nil {
		t.Fatalf("init repository: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	guard := NewGuard(repo)
	return &fixture{
		repo:     repo,
		guard:    guard,
		users:    NewUserService(repo, guard),
		requests: NewRequestService(repo, guard),
		blogs:    NewBlogService(repo, guard),
		payments: NewPaymentService(repo, guard, payment.NewBridge(&stubCreator{}, "usd")),
		stats:    NewStatsService(repo),
	}
}

func (f *fixture) user(t *testing.T, email string, role entity.Role) *entity.DbUser {
	t.Helper()
	user, err := model.PromoteUser(context.Background(), f.repo, email, role)
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func expectKind(t *testing.T, err error, want Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	if got := KindOf(err); got != want {
		t.Fatalf("expected %s error, got %s (%v)", want, got, err)
	}
}

func TestEnsureUserIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, created, err := f.users.Ensure(ctx, "a@x.com", entity.UserUpsertRequest{Name: "Alice"})
	if err != nil || !created {
		t.Fatalf("expected creation, got created=%v err=%v", created, err)
	}
	second, created, err := f.users.Ensure(ctx, "a@x.com", entity.UserUpsertRequest{Name: "Alice"})
	if err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if created || second.ID != first.ID || !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("expected existing record unchanged, got %+v", second)
	}
	if n, _ := f.users.Count(ctx); n != 1 {
		t.Fatalf("expected one user, got %d", n)
	}
}

func TestGuardUsesExactRoles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "admin@x.com", entity.RoleAdmin)
	f.user(t, "vol@x.com", entity.RoleVolunteer)
	f.user(t, "donor@x.com", entity.RoleDonor)

	tests := []struct {
		name  string
		email string
		roles []entity.Role
		want  Kind
	}{
		{name: "admin on admin route", email: "admin@x.com", roles: []entity.Role{entity.RoleAdmin}},
		{name: "admin on volunteer route", email: "admin@x.com", roles: []entity.Role{entity.RoleVolunteer}, want: KindForbidden},
		{name: "volunteer on shared route", email: "vol@x.com", roles: []entity.Role{entity.RoleAdmin, entity.RoleVolunteer}},
		{name: "donor on admin route", email: "donor@x.com", roles: []entity.Role{entity.RoleAdmin}, want: KindForbidden},
		{name: "unknown account", email: "ghost@x.com", roles: []entity.Role{entity.RoleDonor}, want: KindForbidden},
		{name: "no identity", email: "", want: KindUnauthorized},
		{name: "any registered account", email: "donor@x.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.guard.Authorize(ctx, tt.email, tt.roles...)
			if tt.want == 0 {
				if err != nil {
					t.Fatalf("expected allow, got %v", err)
				}
				return
			}
			expectKind(t, err, tt.want)
		})
	}
}

func TestRequestLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "a@x.com", entity.RoleDonor)

	created, err := f.requests.Create(ctx, "a@x.com", entity.RequestCreateRequest{
		RecipientName: "Bob", BloodGroup: "A+", Hospital: "General",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != entity.DonationPending {
		t.Fatalf("expected pending, got %s", created.Status)
	}

	for _, next := range []string{"inprogress", "inprogress", "done", "done"} {
		updated, err := f.requests.SetStatus(ctx, "a@x.com", created.ID, next)
		if err != nil {
			t.Fatalf("set %s: %v", next, err)
		}
		fetched, err := f.requests.Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if string(updated.Status) != next || string(fetched.Status) != next {
			t.Fatalf("expected %s, got updated=%s fetched=%s", next, updated.Status, fetched.Status)
		}
	}

	if n, _ := f.repo.CountRequests(ctx, ""); n != 1 {
		t.Fatalf("expected a single request record, got %d", n)
	}

	_, err = f.requests.SetStatus(ctx, "a@x.com", created.ID, "pending")
	expectKind(t, err, KindConflict)
	_, err = f.requests.SetStatus(ctx, "a@x.com", created.ID, "finished")
	expectKind(t, err, KindInvalid)
	_, err = f.requests.SetStatus(ctx, "a@x.com", "missing", "done")
	expectKind(t, err, KindNotFound)
}

func TestDonorClaimsPendingRequest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "owner@x.com", entity.RoleDonor)
	donor := f.user(t, "donor@x.com", entity.RoleDonor)

	req, err := f.requests.Create(ctx, "owner@x.com", entity.RequestCreateRequest{RecipientName: "R", BloodGroup: "O+", Hospital: "H"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = f.requests.SetStatus(ctx, "donor@x.com", req.ID, "cancelled")
	expectKind(t, err, KindForbidden)

	claimed, err := f.requests.SetStatus(ctx, "donor@x.com", req.ID, "inprogress")
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if claimed.DonorEmail != donor.Email {
		t.Fatalf("expected donor email recorded, got %q", claimed.DonorEmail)
	}

	_, err = f.requests.SetStatus(ctx, "donor@x.com", req.ID, "done")
	expectKind(t, err, KindForbidden)

	if _, err := f.requests.SetStatus(ctx, "donor@x.com", req.ID, "inprogress"); err != nil {
		t.Fatalf("re-applying own claim should be a no-op: %v", err)
	}
}

func TestBlockedUserCannotPostOrClaim(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "owner@x.com", entity.RoleDonor)
	blocked := f.user(t, "blocked@x.com", entity.RoleDonor)
	if _, err := f.users.SetStatus(ctx, blocked.ID, "blocked"); err != nil {
		t.Fatalf("block: %v", err)
	}

	_, err := f.requests.Create(ctx, "blocked@x.com", entity.RequestCreateRequest{RecipientName: "R", BloodGroup: "O+", Hospital: "H"})
	expectKind(t, err, KindForbidden)

	req, err := f.requests.Create(ctx, "owner@x.com", entity.RequestCreateRequest{RecipientName: "R", BloodGroup: "O+", Hospital: "H"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err = f.requests.SetStatus(ctx, "blocked@x.com", req.ID, "inprogress")
	expectKind(t, err, KindForbidden)
}

func TestRequestContentEditRequiresOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "owner@x.com", entity.RoleDonor)
	f.user(t, "other@x.com", entity.RoleDonor)
	f.user(t, "admin@x.com", entity.RoleAdmin)

	req, err := f.requests.Create(ctx, "owner@x.com", entity.RequestCreateRequest{RecipientName: "R", BloodGroup: "O+", Hospital: "H"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	hospital := "City Hospital"
	_, err = f.requests.UpdateContent(ctx, "other@x.com", req.ID, entity.RequestUpdateRequest{Hospital: &hospital})
	expectKind(t, err, KindForbidden)

	updated, err := f.requests.UpdateContent(ctx, "owner@x.com", req.ID, entity.RequestUpdateRequest{Hospital: &hospital})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Hospital != hospital || updated.Status != entity.DonationPending {
		t.Fatalf("unexpected request after update: %+v", updated)
	}

	expectKind(t, f.requests.Delete(ctx, "other@x.com", req.ID), KindForbidden)
	if err := f.requests.Delete(ctx, "admin@x.com", req.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	_, err = f.requests.Get(ctx, req.ID)
	expectKind(t, err, KindNotFound)
}

func TestUserStatusAndRoleUpdatesNeverUpsert(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.users.SetStatus(ctx, "missing", "blocked")
	expectKind(t, err, KindNotFound)
	_, err = f.users.SetRole(ctx, "missing", "admin")
	expectKind(t, err, KindNotFound)
	_, err = f.users.SetRole(ctx, "missing", "superuser")
	expectKind(t, err, KindInvalid)

	if n, _ := f.users.Count(ctx); n != 0 {
		t.Fatalf("expected no users, got %d", n)
	}

	user := f.user(t, "a@x.com", entity.RoleDonor)
	updated, err := f.users.SetRole(ctx, user.ID, "Volunteer")
	if err != nil {
		t.Fatalf("set role: %v", err)
	}
	if updated.Role != entity.RoleVolunteer {
		t.Fatalf("expected volunteer, got %s", updated.Role)
	}
}

func TestBlogPublishWorkflow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "writer@x.com", entity.RoleVolunteer)

	blog, err := f.blogs.Create(ctx, "writer@x.com", entity.BlogCreateRequest{Title: "Why donate", Content: "..."})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if blog.Status != entity.BlogDraft {
		t.Fatalf("expected draft, got %s", blog.Status)
	}
	_, err = f.blogs.GetPublished(ctx, blog.ID)
	expectKind(t, err, KindNotFound)

	if _, err := f.blogs.SetStatus(ctx, blog.ID, "published"); err != nil {
		t.Fatalf("publish: %v", err)
	}
	public, err := f.blogs.ListPublished(ctx, entity.BaseParams{})
	if err != nil {
		t.Fatalf("list published: %v", err)
	}
	if len(public.Blogs) != 1 || public.Meta.Total != 1 {
		t.Fatalf("expected one published blog, got %+v", public.Meta)
	}

	_, err = f.blogs.SetStatus(ctx, blog.ID, "archived")
	expectKind(t, err, KindInvalid)
	if _, err := f.blogs.SetStatus(ctx, blog.ID, "draft"); err != nil {
		t.Fatalf("unpublish: %v", err)
	}
}

func TestPaymentsLedger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "a@x.com", entity.RoleDonor)
	f.user(t, "b@x.com", entity.RoleDonor)

	if _, err := f.payments.Record(ctx, "a@x.com", entity.PaymentCreateRequest{Amount: 12.5, TransactionID: "pi_1"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	_, err := f.payments.Record(ctx, "a@x.com", entity.PaymentCreateRequest{Amount: 12.5, TransactionID: "pi_1"})
	expectKind(t, err, KindConflict)

	mine, err := f.payments.ListByEmail(ctx, "a@x.com", "a@x.com", entity.BaseParams{})
	if err != nil {
		t.Fatalf("list own: %v", err)
	}
	if len(mine.Payments) != 1 {
		t.Fatalf("expected one payment, got %d", len(mine.Payments))
	}
	_, err = f.payments.ListByEmail(ctx, "b@x.com", "a@x.com", entity.BaseParams{})
	expectKind(t, err, KindForbidden)
}

func TestCreateIntentErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	zero := 0.0
	_, err := f.payments.CreateIntent(ctx, &zero)
	expectKind(t, err, KindInvalid)
	var svcErr *Error
	if !errors.As(err, &svcErr) || svcErr.Code != CodeInvalidAmount {
		t.Fatalf("expected %s code, got %v", CodeInvalidAmount, err)
	}

	ten := 10.0
	intent, err := f.payments.CreateIntent(ctx, &ten)
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}
	if intent.Amount != 1000 || intent.ClientSecret == "" {
		t.Fatalf("unexpected intent %+v", intent)
	}

	unconfigured := NewPaymentService(f.repo, f.guard, payment.NewBridge(nil, "usd"))
	_, err = unconfigured.CreateIntent(ctx, &ten)
	expectKind(t, err, KindProcessor)
}

func TestBuildDashboard(t *testing.T) {
	payments := []entity.DbPayment{
		{Amount: 10.9, Date: time.Date(2026, time.October, 15, 8, 0, 0, 0, time.UTC)},
		{Amount: 5.5, Date: time.Date(2026, time.January, 2, 8, 0, 0, 0, time.UTC)},
		{Amount: 0.99, Date: time.Date(2026, time.March, 31, 8, 0, 0, 0, time.UTC)},
	}
	byStatus := map[entity.DonationStatus]int64{
		entity.DonationPending:    3,
		entity.DonationInProgress: 1,
		entity.DonationDone:       2,
	}

	got := BuildDashboard(4, 6, byStatus, payments)

	if got.TotalFunds != 15 {
		t.Fatalf("expected truncated total 15, got %d", got.TotalFunds)
	}
	wantNames := []string{"Pending", "Inprogress", "Done", "Cancelled"}
	var sum int64
	for i, slice := range got.StatusBreakdown {
		if slice.Name != wantNames[i] {
			t.Fatalf("breakdown %d: expected %s, got %s", i, wantNames[i], slice.Name)
		}
		sum += slice.Value
	}
	if sum != got.TotalRequests {
		t.Fatalf("breakdown sums to %d, total requests %d", sum, got.TotalRequests)
	}

	if len(got.TimeSeries) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d", len(got.TimeSeries))
	}
	if got.TimeSeries[0][0] != "Day" || got.TimeSeries[0][1] != "Funds" {
		t.Fatalf("unexpected header %v", got.TimeSeries[0])
	}
	for i, want := range []string{"15/10", "2/1", "31/3"} {
		if got.TimeSeries[i+1][0] != want {
			t.Fatalf("row %d: expected label %s, got %v", i+1, want, got.TimeSeries[i+1][0])
		}
		if got.TimeSeries[i+1][1] != payments[i].Amount {
			t.Fatalf("row %d: expected amount %v, got %v", i+1, payments[i].Amount, got.TimeSeries[i+1][1])
		}
	}
}

func TestDashboardReadsStore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "a@x.com", entity.RoleDonor)

	for _, hospital := range []string{"A", "B"} {
		if _, err := f.requests.Create(ctx, "a@x.com", entity.RequestCreateRequest{RecipientName: "R", BloodGroup: "O+", Hospital: hospital}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if _, err := f.payments.Record(ctx, "a@x.com", entity.PaymentCreateRequest{Amount: 7.8, TransactionID: "pi_x"}); err != nil {
		t.Fatalf("record: %v", err)
	}

	dashboard, err := f.stats.Dashboard(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if dashboard.TotalUsers != 1 || dashboard.TotalRequests != 2 || dashboard.TotalFunds != 7 {
		t.Fatalf("unexpected totals %+v", dashboard)
	}
	if dashboard.StatusBreakdown[0].Value != 2 {
		t.Fatalf("expected two pending, got %d", dashboard.StatusBreakdown[0].Value)
	}
}
