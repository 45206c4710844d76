// Package normalize maps supplier-native hotel payloads onto the canonical
// hotel record. Each supplier has one Mapper; the Engine dispatches on the
// supplier code and applies the shared finalize pass.
package normalize

import (
	"fmt"
	"sort"
	"time"

	"hotel_content/internal/adapters/observability"
	"hotel_content/internal/domain"
	"hotel_content/internal/reference"
)

// Mapper fills h from one supplier's raw payload. It must set h.HotelID
// from the payload's own identifier.
type Mapper interface {
	Map(raw any, h *domain.CanonicalHotel) error
}

type MapperFunc func(raw any, h *domain.CanonicalHotel) error

func (f MapperFunc) Map(raw any, h *domain.CanonicalHotel) error { return f(raw, h) }

// References resolves codes against static side files.
type References interface {
	DOTW(code string) (reference.Geo, bool, error)
	Innstant(code string) (reference.Geo, bool, error)
	IRIXCity(cityID string) (reference.Geo, bool, error)
}

type Engine struct {
	mappers map[string]Mapper
	refs    References
	now     func() time.Time
}

type Option func(*Engine)

// WithClock overrides the wall clock used for created/timestamp.
func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

// New builds an engine with every supplier mapper registered. A nil refs
// disables geo-enrichment. It panics when a known supplier has no mapper.
func New(refs References, opts ...Option) *Engine {
	if refs == nil {
		refs = noReferences{}
	}
	e := &Engine{mappers: make(map[string]Mapper), refs: refs, now: time.Now}
	for _, o := range opts {
		o(e)
	}
	e.registerBuiltins()
	if err := e.checkComplete(); err != nil {
		panic(err)
	}
	return e
}

// Register installs or replaces the mapper for code.
func (e *Engine) Register(code string, m Mapper) { e.mappers[code] = m }

// Supported lists registered supplier codes.
func (e *Engine) Supported() []string {
	out := make([]string, 0, len(e.mappers))
	for k := range e.mappers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (e *Engine) Normalize(supplier string, raw any) (*domain.CanonicalHotel, error) {
	h, err := e.normalize(supplier, raw)
	observability.ObserveNormalize(supplier, err)
	return h, err
}

func (e *Engine) normalize(supplier string, raw any) (*domain.CanonicalHotel, error) {
	m, ok := e.mappers[supplier]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSupplier, supplier)
	}
	h := newHotel(e.now())
	if err := m.Map(raw, h); err != nil {
		return nil, fmt.Errorf("normalize %s: %w", supplier, err)
	}
	if h.HotelID == "" {
		return nil, fmt.Errorf("normalize %s: %w", supplier, domain.ErrMissingHotelID)
	}
	finalize(h)
	return h, nil
}

func (e *Engine) checkComplete() error {
	for _, code := range domain.Suppliers {
		if _, ok := e.mappers[code]; !ok {
			return fmt.Errorf("normalize: no mapper registered for supplier %q", code)
		}
	}
	return nil
}

func (e *Engine) registerBuiltins() {
	e.Register(domain.SupplierHotelbeds, MapperFunc(mapHotelbeds))
	e.Register(domain.SupplierPaximum, MapperFunc(mapPaximum))
	e.Register(domain.SupplierStuba, MapperFunc(mapStuba))
	e.Register(domain.SupplierDOTW, dotwMapper{refs: e.refs})
	e.Register(domain.SupplierAmadeus, MapperFunc(mapAmadeus))
	e.Register(domain.SupplierRoomerang, MapperFunc(mapRoomerang))
	e.Register(domain.SupplierRakuten, MapperFunc(mapRakuten))
	e.Register(domain.SupplierIllusions, MapperFunc(mapIllusions))
	e.Register(domain.SupplierHotelston, MapperFunc(mapHotelston))
	e.Register(domain.SupplierLetsfly, MapperFunc(mapLetsfly))
	e.Register(domain.SupplierGoGlobal, MapperFunc(mapGoGlobal))
	e.Register(domain.SupplierGoGlobalMainSupplier, MapperFunc(mapGoGlobalMain))
	e.Register(domain.SupplierJuniper, MapperFunc(mapJuniper))
	e.Register(domain.SupplierInnstant, innstantMapper{refs: e.refs})
	e.Register(domain.SupplierRestel, MapperFunc(mapRestel))
	e.Register(domain.SupplierRateHawk, MapperFunc(mapRateHawk))
	e.Register(domain.SupplierRateHawkNew, MapperFunc(mapRateHawkNew))
	e.Register(domain.SupplierAgoda, MapperFunc(mapAgoda))
	e.Register(domain.SupplierTBO, MapperFunc(mapTBO))
	e.Register(domain.SupplierEAN, MapperFunc(mapEAN))
	e.Register(domain.SupplierGRNConnect, MapperFunc(mapGRNConnect))
	e.Register(domain.SupplierHyperGuest, MapperFunc(mapHyperGuest))
	e.Register(domain.SupplierRNR, MapperFunc(mapRNR))
	e.Register(domain.SupplierIRIX, irixMapper{refs: e.refs})
	e.Register(domain.SupplierKiwi, MapperFunc(mapKiwi))
	e.Register(domain.SupplierOryx, MapperFunc(mapOryx))
}

type noReferences struct{}

func (noReferences) DOTW(string) (reference.Geo, bool, error)     { return reference.Geo{}, false, nil }
func (noReferences) Innstant(string) (reference.Geo, bool, error) { return reference.Geo{}, false, nil }
func (noReferences) IRIXCity(string) (reference.Geo, bool, error) { return reference.Geo{}, false, nil }
