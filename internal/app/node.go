package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/zkc/internal/adapters/cas"         //nolint:depguard // Wired in app layer
	"go.trai.ch/zkc/internal/adapters/changecache" //nolint:depguard // Wired in app layer
	"go.trai.ch/zkc/internal/adapters/compiler"    //nolint:depguard // Wired in app layer
	"go.trai.ch/zkc/internal/adapters/config"      //nolint:depguard // Wired in app layer
	"go.trai.ch/zkc/internal/adapters/fs"          //nolint:depguard // Wired in app layer
	"go.trai.ch/zkc/internal/adapters/logger"      //nolint:depguard // Wired in app layer
	"go.trai.ch/zkc/internal/adapters/parsecache"  //nolint:depguard // Wired in app layer
	"go.trai.ch/zkc/internal/adapters/telemetry"   //nolint:depguard // Wired in app layer
	"go.trai.ch/zkc/internal/adapters/watcher"     //nolint:depguard // Wired in app layer
	"go.trai.ch/zkc/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			fs.FileSystemNodeID,
			fs.FileReaderNodeID,
			fs.HasherNodeID,
			fs.WalkerNodeID,
			changecache.NodeID,
			parsecache.NodeID,
			cas.NodeID,
			compiler.NodeID,
			telemetry.NodeID,
			telemetry.BridgeNodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: app, Logger: log}, nil
		},
	})
}

//nolint:cyclop // one lookup per dependency
func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	fsys, err := graft.Dep[ports.FileSystem](ctx)
	if err != nil {
		return nil, err
	}
	reader, err := graft.Dep[ports.FileReader](ctx)
	if err != nil {
		return nil, err
	}
	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}
	walker, err := graft.Dep[*fs.Walker](ctx)
	if err != nil {
		return nil, err
	}
	changes, err := graft.Dep[ports.ChangeCache](ctx)
	if err != nil {
		return nil, err
	}
	parseCaches, err := graft.Dep[ports.ParseCacheFactory](ctx)
	if err != nil {
		return nil, err
	}
	stores, err := graft.Dep[ports.ArtifactStoreFactory](ctx)
	if err != nil {
		return nil, err
	}
	compilers, err := graft.Dep[ports.CompilerResolverFactory](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}
	bridge, err := graft.Dep[*telemetry.Bridge](ctx)
	if err != nil {
		return nil, err
	}
	watch, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, log, Services{
		FS:          fsys,
		Reader:      reader,
		Hasher:      hasher,
		Walker:      walker,
		ChangeCache: changes,
		ParseCaches: parseCaches,
		Stores:      stores,
		Compilers:   compilers,
		Tracer:      tracer,
		Spans:       bridge,
		Watcher:     watch,
	}), nil
}
