package failure

import (
	"go.uber.org/zap"

	"github.com/weareopensource/waos-go/internal/infrastructure/logging"
)

// Session is the process-wide login flag cleared when the API rejects the session.
type Session interface {
	SetLogged(logged bool) error
}

// Recorder receives one call per captured error.
type Recorder interface {
	RecordError(kind string)
}

// Policy is the effect-side half of error accumulation. Capture runs where the
// effect completes, so that the fold (Fail, Succeed) stays free of side effects.
type Policy struct {
	session  Session
	recorder Recorder
	logger   *logging.Logger
}

// PolicyOption configures a Policy.
type PolicyOption func(*Policy)

// WithRecorder counts captured errors.
func WithRecorder(r Recorder) PolicyOption {
	return func(p *Policy) { p.recorder = r }
}

// WithLogger logs captured errors.
func WithLogger(l *logging.Logger) PolicyOption {
	return func(p *Policy) { p.logger = l }
}

// NewPolicy creates a policy bound to the session flag. session may be nil.
func NewPolicy(session Session, opts ...PolicyOption) *Policy {
	p := &Policy{session: session, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Capture normalizes err and applies its external consequences: a 401 clears
// the login flag. The returned value is what the Error mutation carries.
func (p *Policy) Capture(err error) *ErrorInfo {
	info := From(err)
	if info == nil {
		return nil
	}

	if info.IsAuth() {
		if info.Kind != KindAuth {
			cp := *info
			cp.Kind = KindAuth
			info = &cp
		}
		if p.session != nil {
			if serr := p.session.SetLogged(false); serr != nil {
				p.logger.Warn("failed to clear login flag", zap.Error(serr))
			}
		}
	}

	if p.recorder != nil {
		p.recorder.RecordError(info.Kind.String())
	}
	p.logger.Debug("error captured",
		zap.Int("code", info.Code),
		zap.String("message", info.Message),
		zap.Stringer("kind", info.Kind),
	)
	return info
}

// Fail folds an error into the list. A 401 replaces any auth entry with the
// generic credentials message; anything else is added once per message.
func Fail(es Errors, e *ErrorInfo) Errors {
	if e == nil {
		return es
	}

	if e.IsAuth() {
		return es.Without(titleLegacyJWT).Replace(DisplayError{
			Title:       TitleAuth,
			Description: authDescription,
			Kind:        KindAuth,
		})
	}

	desc := e.Description
	if desc == "" {
		desc = unknownDescription
	}
	return es.Prepend(DisplayError{
		Title:       e.Message,
		Description: desc,
		Type:        e.Type,
		Kind:        e.Kind,
	})
}

// Succeed folds a success into the list: the entry titled label goes away,
// along with schema validation, auth and unknown entries.
func Succeed(es Errors, label string) Errors {
	return es.Without(label, TitleSchemaValidation, TitleAuth, titleLegacyJWT, TitleUnknown)
}
