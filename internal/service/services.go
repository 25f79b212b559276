package service

import (
	"github.com/MKhiriev/go-user-directory/internal/config"
	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/internal/store"
	"github.com/MKhiriev/go-user-directory/internal/validators"
)

type Services struct {
	AuthService AuthService
	RoleService RoleService
	UserService UserService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	roleService := NewRoleService(storages.GroupRepository, storages.StateRepository, logger)
	userValidator := validators.NewUserValidator()

	return &Services{
		AuthService: NewAuthService(storages.UserRepository, storages.GroupRepository, cfg.Auth, logger),
		RoleService: roleService,
		UserService: NewUserService(storages.UserRepository, roleService, userValidator, cfg.Auth, logger),
	}
}
