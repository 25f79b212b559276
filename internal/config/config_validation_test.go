// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	valid := StructuredConfig{
		Storage: Storage{DB: DB{DSN: "postgres://localhost/db"}},
		Server:  Server{HTTPAddress: "localhost:8080"},
	}

	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{
			name:   "valid config",
			mutate: func(cfg *StructuredConfig) {},
		},
		{
			name:    "missing DSN",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "missing server address",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name: "sweeper enabled without grace",
			mutate: func(cfg *StructuredConfig) {
				cfg.Workers.SweepInterval = time.Minute
			},
			wantErr: ErrInvalidWorkerConfigs,
		},
		{
			name: "sweeper fully configured",
			mutate: func(cfg *StructuredConfig) {
				cfg.Workers.SweepInterval = time.Minute
				cfg.Workers.SweepGrace = 30 * time.Second
			},
		},
		{
			name:   "sweeper disabled needs no grace",
			mutate: func(cfg *StructuredConfig) { cfg.Workers.SweepGrace = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
