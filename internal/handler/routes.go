package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tallytrace/finance-service/internal/config"
	"github.com/tallytrace/finance-service/internal/middleware"
)

// Routes builds the API router. Everything under /api/v1 except auth and fx
// requires a valid token.
func (h *Handler) Routes(cfg *config.Config) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", h.Register).Methods("POST")
	api.HandleFunc("/auth/login", h.Login).Methods("POST")
	api.HandleFunc("/auth/verify-email", h.VerifyEmail).Methods("POST")
	api.HandleFunc("/auth/resend-verification", h.ResendVerification).Methods("POST")
	api.HandleFunc("/auth/forgot-password", h.ForgotPassword).Methods("POST")
	api.HandleFunc("/auth/reset-password", h.ResetPassword).Methods("POST")
	api.HandleFunc("/fx/rates", h.FxRates).Methods("GET")

	// Protected routes
	authRouter := api.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))

	authRouter.HandleFunc("/me", h.Me).Methods("GET")
	authRouter.HandleFunc("/me", h.UpdateMe).Methods("PUT")
	authRouter.HandleFunc("/me/onboarding", h.CompleteOnboarding).Methods("POST")

	authRouter.HandleFunc("/entities", h.CreateEntity).Methods("POST")
	authRouter.HandleFunc("/entities", h.ListEntities).Methods("GET")
	authRouter.HandleFunc("/entities/{id:[0-9]+}", h.GetEntity).Methods("GET")
	authRouter.HandleFunc("/entities/{id:[0-9]+}", h.UpdateEntity).Methods("PUT")
	authRouter.HandleFunc("/entities/{id:[0-9]+}", h.DeleteEntity).Methods("DELETE")
	authRouter.HandleFunc("/entities/{id:[0-9]+}/members", h.AddEntityMember).Methods("POST")
	authRouter.HandleFunc("/entities/{id:[0-9]+}/members", h.ListEntityMembers).Methods("GET")
	authRouter.HandleFunc("/entities/{id:[0-9]+}/members/{user_id:[0-9]+}", h.RemoveEntityMember).Methods("DELETE")
	authRouter.HandleFunc("/entities/{id:[0-9]+}/export.json", h.ExportEntityJSON).Methods("GET")
	authRouter.HandleFunc("/entities/{id:[0-9]+}/export.csv", h.ExportEntityCSV).Methods("GET")

	authRouter.HandleFunc("/accounts", h.CreateAccount).Methods("POST")
	authRouter.HandleFunc("/accounts", h.ListAccounts).Methods("GET")
	authRouter.HandleFunc("/accounts/{id:[0-9]+}", h.GetAccount).Methods("GET")
	authRouter.HandleFunc("/accounts/{id:[0-9]+}", h.UpdateAccount).Methods("PUT")
	authRouter.HandleFunc("/accounts/{id:[0-9]+}", h.DeleteAccount).Methods("DELETE")

	authRouter.HandleFunc("/categories", h.CreateCategory).Methods("POST")
	authRouter.HandleFunc("/categories", h.ListCategories).Methods("GET")
	authRouter.HandleFunc("/categories/{id:[0-9]+}", h.GetCategory).Methods("GET")
	authRouter.HandleFunc("/categories/{id:[0-9]+}", h.UpdateCategory).Methods("PUT")
	authRouter.HandleFunc("/categories/{id:[0-9]+}", h.DeleteCategory).Methods("DELETE")

	authRouter.HandleFunc("/transactions", h.CreateTransaction).Methods("POST")
	authRouter.HandleFunc("/transactions", h.ListTransactions).Methods("GET")
	authRouter.HandleFunc("/transactions/import", h.ImportTransactions).Methods("POST")
	authRouter.HandleFunc("/transactions/{id:[0-9]+}", h.GetTransaction).Methods("GET")
	authRouter.HandleFunc("/transactions/{id:[0-9]+}", h.DeleteTransaction).Methods("DELETE")
	authRouter.HandleFunc("/transactions/{id:[0-9]+}/post", h.PostTransaction).Methods("POST")

	authRouter.HandleFunc("/budget-entries", h.CreateBudgetEntry).Methods("POST")
	authRouter.HandleFunc("/budget-entries", h.ListBudgetEntries).Methods("GET")
	authRouter.HandleFunc("/budget-entries/{id:[0-9]+}", h.GetBudgetEntry).Methods("GET")
	authRouter.HandleFunc("/budget-entries/{id:[0-9]+}", h.UpdateBudgetEntry).Methods("PUT")
	authRouter.HandleFunc("/budget-entries/{id:[0-9]+}", h.DeleteBudgetEntry).Methods("DELETE")

	authRouter.HandleFunc("/allocations", h.CreateAllocation).Methods("POST")
	authRouter.HandleFunc("/allocations", h.ListAllocations).Methods("GET")
	authRouter.HandleFunc("/allocations/{id:[0-9]+}", h.GetAllocation).Methods("GET")
	authRouter.HandleFunc("/allocations/{id:[0-9]+}", h.UpdateAllocation).Methods("PUT")
	authRouter.HandleFunc("/allocations/{id:[0-9]+}", h.DeleteAllocation).Methods("DELETE")

	authRouter.HandleFunc("/wishlist", h.CreateWishlistItem).Methods("POST")
	authRouter.HandleFunc("/wishlist", h.ListWishlistItems).Methods("GET")
	authRouter.HandleFunc("/wishlist/plan", h.WishlistPlan).Methods("GET")
	authRouter.HandleFunc("/wishlist/{id:[0-9]+}", h.GetWishlistItem).Methods("GET")
	authRouter.HandleFunc("/wishlist/{id:[0-9]+}/readiness", h.WishlistReadiness).Methods("GET")
	authRouter.HandleFunc("/wishlist/{id:[0-9]+}", h.UpdateWishlistItem).Methods("PUT")
	authRouter.HandleFunc("/wishlist/{id:[0-9]+}", h.DeleteWishlistItem).Methods("DELETE")

	authRouter.HandleFunc("/forecast/cashflow", h.Cashflow).Methods("GET")
	authRouter.HandleFunc("/forecast/upcoming", h.Upcoming).Methods("GET")
	authRouter.HandleFunc("/forecast/disposable-income", h.DisposableIncome).Methods("GET")

	authRouter.HandleFunc("/dashboard/snapshot", h.DashboardSnapshot).Methods("GET")

	return r
}
