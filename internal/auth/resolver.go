package auth

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/automated-attendance/internal/models"
	"github.com/noah-isme/automated-attendance/internal/session"
)

// NoticeDelay is how long a front end waits after a successful login before
// moving on, so the confirmation can be read.
const NoticeDelay = 1500 * time.Millisecond

// Verifier checks credentials against the remote account services.
type Verifier interface {
	InstructorLogin(ctx context.Context, instructorID, password string) (*models.LoginResponse, error)
	StudentLogin(ctx context.Context, studentID, password string) (*models.LoginResponse, error)
	InstructorLogout(ctx context.Context, instructorID string) error
	StudentLogout(ctx context.Context, studentID string) error
}

// Mirror is the durable session copy.
type Mirror interface {
	Save(rec session.Record) error
	Restore() (*session.Record, error)
	Clear() error
}

// Outcome is a successful login. Role is admin, instructor or student;
// Identity is empty for admin.
type Outcome struct {
	Role        models.Role
	Identity    models.Identity
	Token       string
	NoticeDelay time.Duration
}

// Config holds the static admin pair.
type Config struct {
	AdminID       string
	AdminPassword string
	Logger        *zap.Logger
}

// Resolver maps credentials to exactly one account class: admin by static
// comparison, then instructor, then student.
type Resolver struct {
	verifier      Verifier
	mirror        Mirror
	state         *session.State
	adminID       string
	adminPassword string
	logger        *zap.Logger
}

// NewResolver wires a resolver. state may be nil.
func NewResolver(verifier Verifier, mirror Mirror, state *session.State, cfg Config) *Resolver {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if state == nil {
		state = &session.State{}
	}
	return &Resolver{
		verifier:      verifier,
		mirror:        mirror,
		state:         state,
		adminID:       cfg.AdminID,
		adminPassword: cfg.AdminPassword,
		logger:        cfg.Logger,
	}
}

// State exposes the in-memory session flags.
func (r *Resolver) State() *session.State {
	return r.state
}

// Resolve logs in. It returns an Outcome or an *AuthFailure.
func (r *Resolver) Resolve(ctx context.Context, identifier, secret string) (*Outcome, error) {
	id := strings.TrimSpace(identifier)
	pw := strings.TrimSpace(secret)
	if id == "" || pw == "" {
		return nil, &AuthFailure{Kind: KindValidation, Message: MessageBlank}
	}

	if r.adminID != "" && identifier == r.adminID && secret == r.adminPassword {
		r.logger.Info("admin login", zap.String("identifier", identifier))
		return r.commit(&Outcome{Role: models.RoleAdmin})
	}

	log := r.logger.With(zap.String("identifier", id))

	resp, err := r.verifier.InstructorLogin(ctx, id, pw)
	identity, err := affirmative(resp, err, func(l *models.LoginResponse) *models.Identity { return l.Instructor })
	if err == nil {
		log.Info("instructor login")
		return r.commit(&Outcome{Role: models.RoleInstructor, Identity: *identity, Token: resp.Token})
	}
	log.Debug("instructor verification failed, trying student", zap.Error(err))

	resp, err = r.verifier.StudentLogin(ctx, id, pw)
	identity, err = affirmative(resp, err, func(l *models.LoginResponse) *models.Identity { return l.Student })
	if err == nil {
		log.Info("student login")
		return r.commit(&Outcome{Role: models.RoleStudent, Identity: *identity, Token: resp.Token})
	}

	failure := classify(err)
	log.Warn("login failed", zap.Stringer("kind", failure.Kind), zap.Error(err))
	return nil, failure
}

func affirmative(resp *models.LoginResponse, err error, pick func(*models.LoginResponse) *models.Identity) (*models.Identity, error) {
	if err != nil {
		return nil, err
	}
	if resp == nil || !resp.Success {
		return nil, errNegative
	}
	identity := pick(resp)
	if identity == nil || identity.IDNumber == "" {
		return nil, errMalformed
	}
	return identity, nil
}

// commit writes the mirror first, then flips the in-memory state.
func (r *Resolver) commit(o *Outcome) (*Outcome, error) {
	o.NoticeDelay = NoticeDelay
	rec := session.Record{Role: o.Role, IDNumber: o.Identity.IDNumber, FullName: o.Identity.FullName, Token: o.Token}
	if r.mirror != nil {
		if err := r.mirror.Save(rec); err != nil {
			r.logger.Error("session mirror write failed", zap.String("role", string(o.Role)), zap.Error(err))
		}
	}
	r.state.Set(o.Role, o.Identity, o.Token)
	return o, nil
}

// Restore loads the mirror into the in-memory state.
func (r *Resolver) Restore() (session.Snapshot, error) {
	if r.mirror == nil {
		return r.state.Snapshot(), nil
	}
	rec, err := r.mirror.Restore()
	if err != nil {
		return session.Snapshot{}, err
	}
	r.state.Apply(rec)
	return r.state.Snapshot(), nil
}

// Logout notifies the server for instructor and student sessions (best
// effort), clears the mirror and resets the state.
func (r *Resolver) Logout(ctx context.Context) error {
	snap := r.state.Snapshot()
	var err error
	switch snap.Role {
	case models.RoleInstructor:
		err = r.verifier.InstructorLogout(ctx, snap.Identity.IDNumber)
	case models.RoleStudent:
		err = r.verifier.StudentLogout(ctx, snap.Identity.IDNumber)
	}
	if err != nil {
		r.logger.Warn("logout notification failed", zap.String("role", string(snap.Role)), zap.Error(err))
	}

	r.state.Reset()
	if r.mirror != nil {
		if err := r.mirror.Clear(); err != nil {
			return err
		}
	}
	r.logger.Info("logged out", zap.String("role", string(snap.Role)))
	return nil
}

// AttachToken stores a bearer token on the current session.
func (r *Resolver) AttachToken(token string) error {
	snap := r.state.Snapshot()
	if !snap.LoggedIn() {
		return nil
	}
	r.state.Set(snap.Role, snap.Identity, token)
	if r.mirror == nil {
		return nil
	}
	return r.mirror.Save(session.Record{Role: snap.Role, IDNumber: snap.Identity.IDNumber, FullName: snap.Identity.FullName, Token: token})
}
