package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	handler "auction-engine/services/bidding/handler"
	"auction-engine/services/bidding/helpers"
	"auction-engine/utils"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(biddingService handler.BiddingServiceInterface) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	router.GET("/healthz", func(c *gin.Context) {
		utils.JSONResponse(c, http.StatusOK, gin.H{"ok": true}, "healthy")
	})

	biddingHandler := handler.NewBiddingHandler(biddingService)

	bids := router.Group("/bids/products/:product_id")
	{
		bids.GET("/history", biddingHandler.GetBidHistoryHandler)
		bids.GET("/winning", biddingHandler.GetWinningBidHandler)
		bids.POST("", helpers.RequireUser, biddingHandler.PlaceBidHandler)
		bids.POST("/reject/:bidder_id", helpers.RequireUser, biddingHandler.RejectBidderHandler)
	}

	autoBids := router.Group("/auto-bids", helpers.RequireUser)
	{
		autoBids.PUT("/products/:product_id", biddingHandler.RegisterAutoBidHandler)
	}

	return router
}
