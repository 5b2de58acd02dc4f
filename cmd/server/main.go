// CRM summary notes MCP server.
//
// Exposes summary_create, summary_list, summary_update, and summary_delete
// as MCP tools over Streamable HTTP. Notes are persisted as HubSpot NOTE
// engagements associated with a single configured contact; --no-hubspot
// swaps the gateway for an in-memory store.
package main

import (
	"net/http"
	"os"
	"time"

	"github.com/kuitang/crm-notes/internal/config"
	"github.com/kuitang/crm-notes/internal/hubspot"
	mcpserver "github.com/kuitang/crm-notes/internal/mcp"
	"github.com/kuitang/crm-notes/internal/obs"
	"github.com/kuitang/crm-notes/internal/storemem"
	"github.com/kuitang/crm-notes/internal/summaries"
)

func main() {
	obs.Init()
	log := obs.Pkg("main")

	noHubSpot, addr := config.ParseFlags()
	cfg := config.MustLoadConfig(noHubSpot, addr)
	cfg.PrintStartupSummary()

	var store summaries.Store
	if cfg.NoHubSpot {
		store = storemem.New()
	} else {
		client, err := hubspot.NewClient(cfg)
		if err != nil {
			log.Error("hubspot_client_init_failed", "err", err.Error())
			os.Exit(1)
		}
		store = client
	}

	svc := summaries.NewService(store, cfg.PageLimit)
	server := mcpserver.NewServer(svc)

	mux := http.NewServeMux()
	mux.Handle("/mcp", server)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	handler := obs.RequestContextMiddleware(obs.AccessLogMiddleware("server", mux))
	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info("server_listening", "addr", cfg.ListenAddr, "mcp_path", "/mcp")
	if err := httpServer.ListenAndServe(); err != nil {
		log.Error("server_exited", "err", err.Error())
		os.Exit(1)
	}
}
