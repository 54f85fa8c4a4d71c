package distance

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Strategy names
const (
	StrategyLocal    = "local"
	StrategyExternal = "external"
)

// Selector выбирает стратегию расчета расстояния
// Явный режим имеет приоритет; без режима используется внешняя стратегия,
// если настроен ключ API, иначе локальная
type Selector struct {
	local              Provider
	external           Provider
	externalConfigured bool
}

// NewSelector создает селектор стратегий
func NewSelector(local, external Provider, externalConfigured bool) *Selector {
	return &Selector{
		local:              local,
		external:           external,
		externalConfigured: externalConfigured,
	}
}

// Select возвращает стратегию и её имя для режима mode
func (s *Selector) Select(mode string) (Provider, string, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case domain.DistanceModeLocal:
		return s.local, StrategyLocal, nil
	case domain.DistanceModeExternal, domain.DistanceModeGoogle:
		return s.external, StrategyExternal, nil
	case domain.DistanceModeAuto:
		if s.externalConfigured {
			return s.external, StrategyExternal, nil
		}
		return s.local, StrategyLocal, nil
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}
