// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/zkc/internal/adapters/cas"
	_ "go.trai.ch/zkc/internal/adapters/changecache"
	_ "go.trai.ch/zkc/internal/adapters/compiler"
	_ "go.trai.ch/zkc/internal/adapters/config"
	_ "go.trai.ch/zkc/internal/adapters/fs"
	_ "go.trai.ch/zkc/internal/adapters/logger"
	_ "go.trai.ch/zkc/internal/adapters/parsecache"
	_ "go.trai.ch/zkc/internal/adapters/shell"
	_ "go.trai.ch/zkc/internal/adapters/telemetry"
	_ "go.trai.ch/zkc/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/zkc/internal/app"
)
