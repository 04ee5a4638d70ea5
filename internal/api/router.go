package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with all routes. The feed handler is
// optional; pass nil to disable the websocket endpoint (tests).
func NewRouter(h *Handler, feed http.Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	v1 := router.Group("/v1")
	{
		v1.POST("/orders", h.SubmitOrder)
		v1.POST("/orders/take", h.TakeOrder)
		v1.DELETE("/orders/:id", h.RemoveOrder)

		v1.POST("/offers", h.SubmitOffer)
		v1.DELETE("/offers/:id", h.RemoveOffer)

		v1.POST("/auctions", h.SubmitAuction)
		v1.POST("/auctions/bid", h.BidAuction)

		v1.GET("/categories/:id/listings", h.ListCategory)
		v1.GET("/accounts/:account/balances/:currency", h.Balance)
		v1.GET("/metrics", h.Metrics)

		admin := v1.Group("/admin")
		{
			admin.POST("/faucet", h.Faucet)
			admin.POST("/mint", h.Mint)
			admin.POST("/categories", h.RegisterCategory)
			admin.POST("/step", h.AdvanceStep)
		}
	}

	if feed != nil {
		router.GET("/v1/feed", gin.WrapH(feed))
	}

	return router
}
