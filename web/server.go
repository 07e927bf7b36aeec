package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"fortuna/domain/interfaces"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	log "github.com/sirupsen/logrus"
)

// Server exposes the read-only stats API.
type Server struct {
	httpServer *http.Server
	uowFactory interfaces.UnitOfWorkFactory
}

// NewServer creates a new stats server listening on addr
func NewServer(addr string, uowFactory interfaces.UnitOfWorkFactory) *Server {
	s := &Server{uowFactory: uowFactory}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET"},
	}))

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/stats", s.handleStats)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	return s
}

// Start begins serving in a goroutine
func (s *Server) Start() {
	go func() {
		log.WithField("addr", s.httpServer.Addr).Info("stats server listening")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("stats server failed")
		}
	}()
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

type topUserResponse struct {
	Username string `json:"username"`
	Balance  string `json:"balance"`
}

type recentEntryResponse struct {
	Username  string `json:"username"`
	Amount    string `json:"amount"`
	Category  string `json:"category"`
	CreatedAt string `json:"created_at"`
}

type recentGameResponse struct {
	Username  string `json:"username"`
	GameType  string `json:"game_type"`
	BetAmount string `json:"bet_amount"`
	Payout    string `json:"payout"`
	CreatedAt string `json:"created_at"`
}

type statsResponse struct {
	TotalBets          int64                 `json:"total_bets"`
	TotalWagered       string                `json:"total_wagered"`
	TotalPayout        string                `json:"total_payout"`
	TotalMined         string                `json:"total_mined"`
	PaybackRatio       string                `json:"payback_ratio"`
	UpdatedAt          string                `json:"updated_at"`
	UserCount          int64                 `json:"user_count"`
	TotalCurrency      string                `json:"total_currency"`
	TopUsers           []topUserResponse     `json:"top_users"`
	RecentTransactions []recentEntryResponse `json:"recent_transactions"`
	RecentGames        []recentGameResponse  `json:"recent_games"`
}

const (
	topUsersLimit     = 5
	recentActivityMax = 10
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer uow.Rollback()

	stats, err := uow.StatsRepository().Get(ctx)
	if err != nil {
		log.WithError(err).Error("failed to load statistics")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	userCount, totalCurrency, err := uow.AccountRepository().Census(ctx)
	if err != nil {
		log.WithError(err).Error("failed to take account census")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	top, err := uow.AccountRepository().Top(ctx, topUsersLimit)
	if err != nil {
		log.WithError(err).Error("failed to load top accounts")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	recentEntries, err := uow.LedgerRepository().Recent(ctx, recentActivityMax)
	if err != nil {
		log.WithError(err).Error("failed to load recent ledger entries")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	recentGames, err := uow.GameSessionRepository().Recent(ctx, recentActivityMax)
	if err != nil {
		log.WithError(err).Error("failed to load recent game sessions")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := statsResponse{
		TotalBets:          stats.TotalBets,
		TotalWagered:       stats.TotalWagered.StringFixed(2),
		TotalPayout:        stats.TotalPayout.StringFixed(2),
		TotalMined:         stats.TotalMined.StringFixed(2),
		PaybackRatio:       stats.PaybackRatio().StringFixed(4),
		UpdatedAt:          stats.UpdatedAt.UTC().Format(time.RFC3339),
		UserCount:          userCount,
		TotalCurrency:      totalCurrency.StringFixed(2),
		TopUsers:           make([]topUserResponse, 0, len(top)),
		RecentTransactions: make([]recentEntryResponse, 0, len(recentEntries)),
		RecentGames:        make([]recentGameResponse, 0, len(recentGames)),
	}
	for _, account := range top {
		resp.TopUsers = append(resp.TopUsers, topUserResponse{
			Username: account.Username,
			Balance:  account.Balance.StringFixed(2),
		})
	}
	for _, e := range recentEntries {
		resp.RecentTransactions = append(resp.RecentTransactions, recentEntryResponse{
			Username:  e.Username,
			Amount:    e.Amount.StringFixed(2),
			Category:  string(e.Category),
			CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	for _, g := range recentGames {
		resp.RecentGames = append(resp.RecentGames, recentGameResponse{
			Username:  g.Username,
			GameType:  string(g.GameType),
			BetAmount: g.BetAmount.StringFixed(2),
			Payout:    g.Payout.StringFixed(2),
			CreatedAt: g.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.WithError(err).Error("failed to encode stats response")
	}
}
