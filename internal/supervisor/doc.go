// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

/*
Package supervisor runs the long-lived services of the server under a suture v4
supervisor tree.

	RootSupervisor ("headline")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── CacheJanitorService (memory cache backend only)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's backoff, and a failure in the
maintenance layer never stops the API layer. Supervisor events are logged
through sutureslog, which main wires to zerolog with logging.NewSlogLogger.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	err = <-tree.ServeBackground(ctx)

The registry itself is not a service: it is loaded once before the tree starts
and never changes.
*/
package supervisor
