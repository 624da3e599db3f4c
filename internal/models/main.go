package models

// ModelRegistry lists every model that participates in gorm AutoMigrate.
// Register new models here so --auto-migrate picks them up.
var ModelRegistry = []interface{}{
	&WaitlistEntry{},
}
