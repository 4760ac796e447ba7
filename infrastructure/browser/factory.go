package browser

import (
	"fmt"

	"ui_harness/domain/entities"
	"ui_harness/domain/interfaces"
	"ui_harness/infrastructure/browser/memory"

	"github.com/sirupsen/logrus"
)

// NewDriver - creates the backend named by cfg.Driver
func NewDriver(cfg entities.Config, logger *logrus.Logger) (interfaces.Driver, error) {
	switch cfg.Driver {
	case entities.DriverPlaywright, "":
		return NewPlaywrightDriver(cfg, logger)
	case entities.DriverRod:
		return NewRodDriver(cfg, logger)
	case entities.DriverSelenium:
		return NewSeleniumDriver(cfg, logger)
	case entities.DriverMemory:
		return memory.NewDriver(memory.NewSauceDemo(cfg.BaseURL)), nil
	default:
		return nil, fmt.Errorf("unknown driver: %s", cfg.Driver)
	}
}
