package domain

import (
	"github.com/obiano/waitlist-api/config"
	"github.com/obiano/waitlist-api/domain/monitoring"
	"github.com/obiano/waitlist-api/domain/waitlist"
)

func SetupCoreDomain(appConfig *config.ApplicationConfig) {
	appConfig.RouterService.MountController(monitoring.NewMonitoringController(appConfig.DB, appConfig.Logger, appConfig.Cache))
	appConfig.RouterService.MountController(waitlist.NewWaitlistController(appConfig.DB, appConfig.Logger, appConfig.Cache))
}
