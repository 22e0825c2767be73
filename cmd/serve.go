package cmd

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/jsphweid/musicbox/agent"
	"github.com/jsphweid/musicbox/config"
	"github.com/jsphweid/musicbox/library"
	"github.com/jsphweid/musicbox/model"
	"github.com/jsphweid/musicbox/parse"
	"github.com/jsphweid/musicbox/scrape"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	serveCfg      config.Config
	serveLib      *library.Library
	servePipeline agent.Pipeline
	serveLog      = zap.NewNop()

	sessionMu sync.Mutex
	sessions  = make(map[string]*agent.Session)
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the chord sheet server",
	Long:  `Runs the HTTP server with the chat agent and sheet library.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log, err := zap.NewProduction()
		if err != nil {
			return err
		}
		defer log.Sync()

		parser, err := parse.NewGeminiParser(cmd.Context(), cfg.GeminiAPIKey, cfg.Model, log)
		if err != nil {
			return err
		}
		if err := LoadServe(cfg, parser, log); err != nil {
			return err
		}

		log.Info("listening", zap.String("addr", cfg.Addr))
		return http.ListenAndServe(cfg.Addr, NewRouter())
	},
}

// LoadServe prepares the package-level server state. Split out so the
// e2e tests can wire a fake parser and a temp library.
func LoadServe(cfg config.Config, parser parse.Parser, log *zap.Logger) error {
	lib, err := library.Open(cfg.LibraryDir)
	if err != nil {
		return err
	}
	if log == nil {
		log = zap.NewNop()
	}
	serveCfg = cfg
	serveLib = lib
	serveLog = log
	servePipeline = agent.Pipeline{
		Search: scrape.Search,
		Fetch:  scrape.FetchTab,
		Parser: parser,
		Lib:    lib,
		Log:    log,
	}
	return nil
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/chat", HandleChat).Methods("POST")
	router.HandleFunc("/clean", HandleClean).Methods("POST")
	router.HandleFunc("/sheets", HandleListSheets).Methods("GET")
	router.HandleFunc("/sheets/{name}", HandleGetSheet).Methods("GET")
	router.HandleFunc("/download/{name}", HandleDownload).Methods("GET")
	router.Use(logRequests)
	return cors.Default().Handler(router)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serveLog.Info("request", zap.String("method", r.Method), zap.String("path", r.URL.Path))
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func HandleChat(w http.ResponseWriter, r *http.Request) {
	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "could not parse request body: "+err.Error())
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	session, err := getOrCreateSession(r, req.SessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp, err := session.Chat(r.Context(), req.Message)
	if err != nil {
		serveLog.Error("chat turn failed", zap.String("session", session.ID), zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, model.ChatResponse{
		SessionID: session.ID,
		Content:   resp.Content,
		SheetPath: resp.SheetPath,
	})
}

func getOrCreateSession(r *http.Request, id string) (*agent.Session, error) {
	sessionMu.Lock()
	defer sessionMu.Unlock()
	if s, ok := sessions[id]; ok {
		return s, nil
	}
	s, err := agent.NewSession(r.Context(), serveCfg.GeminiAPIKey, serveCfg.Model, servePipeline, serveLog)
	if err != nil {
		return nil, err
	}
	sessions[s.ID] = s
	return s, nil
}

// HandleClean structures pasted tab text and saves the rendered sheet.
func HandleClean(w http.ResponseWriter, r *http.Request) {
	var req model.CleanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "could not parse request body: "+err.Error())
		return
	}
	if req.RawText == "" {
		writeError(w, http.StatusBadRequest, "raw_text is required")
		return
	}

	song, err := servePipeline.Parser.Parse(r.Context(), req.RawText, req.Artist, req.Title)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	info, err := serveLib.Save(*song)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	serveLog.Info("cleaned sheet", zap.String("name", info.Name))
	writeJSON(w, http.StatusOK, info)
}

func HandleListSheets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, serveLib.List())
}

func HandleGetSheet(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	info, ok := serveLib.Get(name)
	if !ok {
		writeError(w, http.StatusNotFound, "no sheet named "+name)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func HandleDownload(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	info, ok := serveLib.Get(name)
	if !ok {
		writeError(w, http.StatusNotFound, "no sheet named "+name)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	http.ServeFile(w, r, info.SheetPath)
}
