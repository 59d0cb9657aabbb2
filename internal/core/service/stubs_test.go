package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/nyaaysathi/legal-api/internal/core/domain"
	"github.com/nyaaysathi/legal-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubIdentityRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.Identity
	createErr error // if set, Create returns this error
	findErr   error // if set, FindByEmail and FindByID return this error
}

func newStubIdentityRepo() *stubIdentityRepo {
	return &stubIdentityRepo{byID: make(map[string]*domain.Identity)}
}

func cloneIdentity(i *domain.Identity) *domain.Identity {
	c := *i
	if i.Lawyer != nil {
		p := *i.Lawyer
		c.Lawyer = &p
	}
	if i.LawFirm != nil {
		p := *i.LawFirm
		c.LawFirm = &p
	}
	if i.FirmLawyer != nil {
		p := *i.FirmLawyer
		c.FirmLawyer = &p
	}
	if i.FirmClient != nil {
		p := *i.FirmClient
		c.FirmClient = &p
	}
	return &c
}

func (r *stubIdentityRepo) Create(_ context.Context, i *domain.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	// Mirrors the unique (email, role) index.
	for _, existing := range r.byID {
		if existing.Email == i.Email && existing.Role == i.Role {
			return domain.ErrDuplicateIdentity
		}
	}
	r.byID[i.ID] = cloneIdentity(i)
	return nil
}

func (r *stubIdentityRepo) FindByEmail(_ context.Context, email string, role domain.Role) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, i := range r.byID {
		if i.Email == email && i.Role == role {
			return cloneIdentity(i), nil
		}
	}
	return nil, domain.ErrIdentityNotFound
}

func (r *stubIdentityRepo) FindByID(_ context.Context, id string, role domain.Role) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	i, ok := r.byID[id]
	if !ok || i.Role != role {
		return nil, domain.ErrIdentityNotFound
	}
	return cloneIdentity(i), nil
}

func (r *stubIdentityRepo) List(_ context.Context, f ports.IdentityFilter) ([]*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Identity
	for _, i := range r.byID {
		if i.Role != f.Role {
			continue
		}
		if f.FirmID != "" && i.FirmID() != f.FirmID {
			continue
		}
		out = append(out, cloneIdentity(i))
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}

func (r *stubIdentityRepo) SetActive(_ context.Context, id string, role domain.Role, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.byID[id]
	if !ok || i.Role != role {
		return domain.ErrIdentityNotFound
	}
	i.IsActive = active
	return nil
}

func (r *stubIdentityRepo) AssignLawyer(_ context.Context, clientID, lawyerID, lawyerName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.byID[clientID]
	if !ok || i.Role != domain.RoleFirmClient {
		return domain.ErrFirmClientNotFound
	}
	if i.FirmClient == nil {
		i.FirmClient = &domain.FirmClientProfile{}
	}
	i.FirmClient.AssignedLawyerID = lawyerID
	i.FirmClient.AssignedLawyerName = lawyerName
	return nil
}

func (r *stubIdentityRepo) RecordLogin(_ context.Context, id string, role domain.Role, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.byID[id]
	if !ok || i.Role != role {
		return domain.ErrIdentityNotFound
	}
	i.LastLogin = &at
	return nil
}

func (r *stubIdentityRepo) Delete(_ context.Context, id string, role domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.byID[id]
	if !ok || i.Role != role {
		return domain.ErrIdentityNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubIdentityRepo) count(role domain.Role) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, i := range r.byID {
		if i.Role == role {
			n++
		}
	}
	return n
}

// put seeds an identity directly.
func (r *stubIdentityRepo) put(i *domain.Identity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[i.ID] = cloneIdentity(i)
}

type stubApplicationRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.Application
	decideErr error
	reverted  []string
}

func newStubApplicationRepo() *stubApplicationRepo {
	return &stubApplicationRepo{byID: make(map[string]*domain.Application)}
}

func (r *stubApplicationRepo) Create(_ context.Context, a *domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *a
	r.byID[a.ID] = &clone
	return nil
}

func (r *stubApplicationRepo) FindByID(_ context.Context, kind domain.ApplicationKind, id string) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok || a.Kind != kind {
		return nil, domain.ErrApplicationNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubApplicationRepo) HasOpen(_ context.Context, kind domain.ApplicationKind, email, lawFirmID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byID {
		if a.Kind != kind || a.Email != email || a.Status == domain.ApplicationRejected {
			continue
		}
		if lawFirmID != "" && a.LawFirmID != lawFirmID {
			continue
		}
		return true, nil
	}
	return false, nil
}

func (r *stubApplicationRepo) List(_ context.Context, f ports.ApplicationFilter) ([]*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Application
	for _, a := range r.byID {
		if a.Kind != f.Kind {
			continue
		}
		if f.LawFirmID != "" && a.LawFirmID != f.LawFirmID {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		clone := *a
		out = append(out, &clone)
	}
	return out, nil
}

// Decide mirrors the conditional update on status=pending.
func (r *stubApplicationRepo) Decide(_ context.Context, kind domain.ApplicationKind, id string, status domain.ApplicationStatus, decision domain.Decision, identityID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.decideErr != nil {
		return r.decideErr
	}
	a, ok := r.byID[id]
	if !ok || a.Kind != kind {
		return domain.ErrApplicationNotFound
	}
	if a.Status != domain.ApplicationPending {
		return domain.ErrAlreadyDecided
	}
	a.Status = status
	a.Decision = &decision
	a.IdentityID = identityID
	return nil
}

func (r *stubApplicationRepo) Revert(_ context.Context, _ domain.ApplicationKind, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok || a.Status != domain.ApplicationApproved {
		return domain.ErrApplicationNotFound
	}
	a.Status = domain.ApplicationPending
	a.Decision = nil
	a.IdentityID = ""
	r.reverted = append(r.reverted, id)
	return nil
}

func (r *stubApplicationRepo) status(id string) domain.ApplicationStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id].Status
}

type stubGuard struct {
	mu         sync.Mutex
	held       map[string]bool
	acquireErr error
	released   []string
}

func newStubGuard() *stubGuard {
	return &stubGuard{held: make(map[string]bool)}
}

func (g *stubGuard) Acquire(_ context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.acquireErr != nil {
		return false, g.acquireErr
	}
	if g.held[key] {
		return false, nil
	}
	g.held[key] = true
	return true, nil
}

func (g *stubGuard) Release(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.held, key)
	g.released = append(g.released, key)
	return nil
}

type stubTaskRepo struct {
	byID map[string]*domain.Task
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{byID: make(map[string]*domain.Task)}
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) error {
	clone := *t
	r.byID[t.ID] = &clone
	return nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) ListByAssignee(_ context.Context, lawyerID string) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range r.byID {
		if t.AssignedTo == lawyerID {
			clone := *t
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubTaskRepo) ListByFirm(_ context.Context, firmID string) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range r.byID {
		if t.FirmID == firmID {
			clone := *t
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubTaskRepo) UpdateStatus(_ context.Context, id string, status domain.TaskStatus, completedAt *time.Time) error {
	t, ok := r.byID[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	t.Status = status
	t.CompletedAt = completedAt
	return nil
}

type stubCaseUpdateRepo struct {
	items []*domain.CaseUpdate
}

func (r *stubCaseUpdateRepo) Create(_ context.Context, u *domain.CaseUpdate) error {
	clone := *u
	r.items = append(r.items, &clone)
	return nil
}

func (r *stubCaseUpdateRepo) ListByClient(_ context.Context, clientID string) ([]*domain.CaseUpdate, error) {
	var out []*domain.CaseUpdate
	for _, u := range r.items {
		if u.ClientID == clientID {
			out = append(out, u)
		}
	}
	return out, nil
}

type stubCaseRepo struct {
	byID map[string]*domain.Case
}

func newStubCaseRepo() *stubCaseRepo {
	return &stubCaseRepo{byID: make(map[string]*domain.Case)}
}

func (r *stubCaseRepo) Create(_ context.Context, c *domain.Case) error {
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubCaseRepo) FindByID(_ context.Context, id, ownerID string) (*domain.Case, error) {
	c, ok := r.byID[id]
	if !ok || c.UserID != ownerID {
		return nil, domain.ErrCaseNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCaseRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.Case, error) {
	var out []*domain.Case
	for _, c := range r.byID {
		if c.UserID == ownerID {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubDocumentRepo struct {
	items []*domain.Document
}

func (r *stubDocumentRepo) Create(_ context.Context, d *domain.Document) error {
	clone := *d
	r.items = append(r.items, &clone)
	return nil
}

func (r *stubDocumentRepo) List(_ context.Context, ownerID, caseID string) ([]*domain.Document, error) {
	var out []*domain.Document
	for _, d := range r.items {
		if d.UserID != ownerID || (caseID != "" && d.CaseID != caseID) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

type stubBookingRepo struct {
	byID map[string]*domain.Booking
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{byID: make(map[string]*domain.Booking)}
}

func (r *stubBookingRepo) Create(_ context.Context, b *domain.Booking) error {
	clone := *b
	r.byID[b.ID] = &clone
	return nil
}

func (r *stubBookingRepo) FindByID(_ context.Context, id string) (*domain.Booking, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBookingRepo) ListByClient(_ context.Context, clientID string) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range r.byID {
		if b.ClientID == clientID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *stubBookingRepo) ListByLawyer(_ context.Context, lawyerID string) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range r.byID {
		if b.LawyerID == lawyerID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *stubBookingRepo) UpdateStatus(_ context.Context, id string, status domain.BookingStatus) error {
	b, ok := r.byID[id]
	if !ok {
		return domain.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

type stubWaitlistRepo struct {
	emails map[string]bool
}

func (r *stubWaitlistRepo) Create(_ context.Context, e *domain.WaitlistEntry) error {
	if r.emails == nil {
		r.emails = make(map[string]bool)
	}
	if r.emails[e.Email] {
		return domain.ErrDuplicateWaitlistEntry
	}
	r.emails[e.Email] = true
	return nil
}

type stubChatHistory struct {
	items     []*domain.ChatExchange
	insertErr error
	lastLimit int
}

func (r *stubChatHistory) Insert(_ context.Context, e *domain.ChatExchange) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.items = append(r.items, e)
	return nil
}

func (r *stubChatHistory) Recent(_ context.Context, userID string, limit int) ([]*domain.ChatExchange, error) {
	r.lastLimit = limit
	var out []*domain.ChatExchange
	for i := len(r.items) - 1; i >= 0 && len(out) < limit; i-- {
		if r.items[i].UserID == userID {
			out = append(out, r.items[i])
		}
	}
	return out, nil
}

type stubCompleter struct {
	reply       string
	err         error
	lastSession string
	lastPrompt  string
}

func (c *stubCompleter) Complete(_ context.Context, sessionID, systemPrompt, _ string) (string, error) {
	c.lastSession, c.lastPrompt = sessionID, systemPrompt
	if c.err != nil {
		return "", c.err
	}
	return c.reply, nil
}
