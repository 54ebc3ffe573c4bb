package http

import (
	"net/http"

	"loan-planner/service"
)

// NewRouter wires every route behind the rate limiter.
func NewRouter(
	plans *service.PlanService,
	loans *service.LoanService,
	limiter *RateLimiter,
) http.Handler {
	planHandler := NewPlanHandler(plans)
	loanHandler := NewLoanHandler(loans)

	mux := http.NewServeMux()
	mux.Handle("/plan/simulate", RateLimitMiddleware(limiter, http.HandlerFunc(planHandler.Simulate)))
	mux.Handle("/plan/history", RateLimitMiddleware(limiter, http.HandlerFunc(planHandler.History)))
	mux.Handle("/plan/history/{id}", RateLimitMiddleware(limiter, http.HandlerFunc(planHandler.Record)))
	mux.Handle("/loan/calculate", RateLimitMiddleware(limiter, http.HandlerFunc(loanHandler.CalculateLoan)))
	return mux
}
