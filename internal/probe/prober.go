package probe

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"play-probe/internal/models"
	"play-probe/internal/report"
)

// Prober walks candidate package names in order, at most one call per
// candidate per method.
type Prober struct {
	api    API
	out    *report.Reporter
	logger *log.Logger
	email  string
}

// New returns a Prober. email is the service account the remediation text
// tells the operator to link.
func New(api API, out *report.Reporter, logger *log.Logger, email string) *Prober {
	return &Prober{api: api, out: out, logger: logger, email: email}
}

func (p *Prober) try(ctx context.Context, m Method, pkg string) (models.ProbeResult, string) {
	detail, err := m.Run(ctx, p.api, pkg, p.logger)
	res := models.ProbeResult{Package: pkg, Method: m.Name, Outcome: Classify(err).String(), Err: err}
	p.logger.Debug("probe", "package", res.Package, "method", res.Method, "outcome", res.Outcome)
	return res, detail
}

// FindFirst inserts an empty edit for each candidate and stops at the first
// one that succeeds.
func (p *Prober) FindFirst(ctx context.Context, candidates []string) (string, bool, error) {
	p.out.Line("Testing candidate package names...")

	for _, pkg := range candidates {
		if err := ctx.Err(); err != nil {
			return "", false, err
		}
		res, detail := p.try(ctx, InsertEdit, pkg)
		if Aborted(res.Err) {
			return "", false, res.Err
		}

		switch Classify(res.Err) {
		case FoundAccessible:
			p.out.Success("FOUND: Package %s exists!", pkg)
			p.out.Line("%s", detail)
			return pkg, true, nil
		case NotFound:
			p.out.Failure("Package %s not found", pkg)
		case Forbidden:
			p.out.Failure("Service account doesn't have access to %s", pkg)
			p.out.Remediation(p.email)
		default:
			p.out.Warning("Error testing %s: %v", pkg, res.Err)
		}
	}

	p.out.Blank()
	p.out.Failure("No accessible package found")
	return "", false, nil
}

// FindAll tries every method against every candidate and returns each
// candidate that answered successfully, in candidate order. A 403 stops the
// remaining methods for that candidate only.
func (p *Prober) FindAll(ctx context.Context, candidates []string, methods ...Method) ([]string, error) {
	if len(methods) == 0 {
		methods = DefaultMethods()
	}
	p.out.Line("Service account: %s", p.email)
	p.out.Line("Testing different approaches to find apps...")

	found := []string{}
	for _, pkg := range candidates {
		if err := ctx.Err(); err != nil {
			return found, err
		}
		p.out.Blank()
		p.out.Heading("Testing package: %s", pkg)

	tries:
		for _, m := range methods {
			res, detail := p.try(ctx, m, pkg)
			if Aborted(res.Err) {
				return found, res.Err
			}
			switch Classify(res.Err) {
			case FoundAccessible:
				p.out.SubSuccess("%s succeeded!", m.Name)
				if detail != "" {
					p.out.Line("  Result: %s", detail)
				}
				found = append(found, pkg)
				break tries
			case NotFound:
				p.out.SubFailure("%s: Package not found", m.Name)
			case Forbidden:
				p.out.SubFailure("%s: Service account doesn't have access", m.Name)
				p.out.Remediation(p.email)
				break tries
			default:
				p.out.SubWarning("%s: %v", m.Name, res.Err)
			}
		}
	}

	p.out.Blank()
	if len(found) > 0 {
		p.out.Celebrate("Found accessible packages: %s", strings.Join(found, ", "))
	} else {
		p.out.Failure("No accessible package found")
	}
	return found, nil
}

// CheckAccess reads edit metadata for one package and explains how to grant
// access when the service account is refused.
func (p *Prober) CheckAccess(ctx context.Context, pkg string) (Outcome, error) {
	p.out.Line("Service account: %s", p.email)
	p.out.Line("Package: %s", pkg)
	p.out.Blank()
	p.out.Line("Testing service account access...")

	res, detail := p.try(ctx, GetEdit, pkg)
	if Aborted(res.Err) {
		return OtherError, res.Err
	}
	outcome := Classify(res.Err)
	switch outcome {
	case FoundAccessible:
		p.out.Success("Service account has access to the app!")
		p.out.Line("%s", detail)
	case NotFound:
		p.out.Failure("App with package name '%s' not found.", pkg)
		p.out.Line("Please verify the package name matches what you created in Google Play Console.")
	case Forbidden:
		p.out.Failure("Service account doesn't have access to this app.")
		p.out.Remediation(p.email)
	default:
		p.out.Failure("Error: %v", res.Err)
	}
	return outcome, nil
}
