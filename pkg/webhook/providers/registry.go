package providers

import (
	"fmt"
	"sync"

	"bwh/core-api/pkg/webhook"
	"bwh/core-api/pkg/webhook/signature"
)

// Config declaratively describes one provider instance; spec §3.3 notes
// a Provider may be "constructed once, optionally from a declarative
// config" — this is that config, also the shape persisted by
// internal/modules/providerconfig.
type Config struct {
	Name            string
	Type            string // github|stripe|shopify|twilio|slack|svix|clerk|recall|sendgrid|linear|ragie|discord|generic
	Secret          string
	TwilioURL       string
	SignatureHeader string // generic only; defaults to "x-signature"
	Algorithm       signature.Algorithm
}

// New constructs a builtin provider from a declarative Config. Dispatch
// on Type mirrors the teacher's telemetry/metrics.New constructor switch.
func New(cfg Config) (webhook.Provider, error) {
	switch cfg.Type {
	case "github":
		return NewGitHub(cfg.Secret), nil
	case "stripe":
		return NewStripe(cfg.Secret), nil
	case "shopify":
		return NewShopify(cfg.Secret), nil
	case "twilio":
		return NewTwilio(cfg.Secret, cfg.TwilioURL), nil
	case "slack":
		return NewSlack(cfg.Secret), nil
	case "svix", "clerk", "recall":
		name := cfg.Name
		if name == "" {
			name = cfg.Type
		}
		return NewSvix(name, cfg.Secret), nil
	case "sendgrid":
		return NewSendGrid(cfg.Secret), nil
	case "linear":
		return NewLinear(cfg.Secret), nil
	case "ragie":
		return NewRagie(cfg.Secret), nil
	case "discord":
		return NewDiscord(cfg.Secret), nil
	case "generic":
		header := cfg.SignatureHeader
		if header == "" {
			header = "x-signature"
		}
		name := cfg.Name
		if name == "" {
			name = "generic"
		}
		return NewGeneric(name, cfg.Secret, header, cfg.Algorithm), nil
	default:
		return nil, fmt.Errorf("providers: unknown provider type %q", cfg.Type)
	}
}

// Registry is a name-keyed lookup of constructed providers, hydrated at
// boot from internal/modules/providerconfig rows. NewRegistry starts
// empty; no builtin provider is registered automatically.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]webhook.Provider
}

func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]webhook.Provider)}
}

func (r *Registry) Register(p webhook.Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.Name()] = p
}

func (r *Registry) Get(name string) (webhook.Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[name]
	return p, ok
}

func (r *Registry) List() []webhook.Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]webhook.Provider, 0, len(r.providers))
	for _, p := range r.providers {
		out = append(out, p)
	}
	return out
}
