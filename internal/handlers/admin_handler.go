// Package handlers implements the CRUD gateway the admin dashboard talks to.
// Every route is a pass-through to the document store; no aggregation happens
// here. The derived product fields (stock, rating, numRatings) are owned by
// the triggers and are never written through these routes.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/storefrontkit/go-store-admin/internal/aws"
	"github.com/storefrontkit/go-store-admin/internal/catalog"
	"github.com/storefrontkit/go-store-admin/internal/config"
	"github.com/storefrontkit/go-store-admin/internal/orders"
	"github.com/storefrontkit/go-store-admin/internal/products"
	"github.com/storefrontkit/go-store-admin/internal/users"
	"github.com/storefrontkit/go-store-admin/internal/validation"
)

// HandlerConfig groups dependencies for the gateway routes.
type HandlerConfig struct {
	DynamoDBClient aws.DynamoDBAPI
	SQSClient      aws.SQSAPI
	Tables         config.Tables
	QueueURL       string
	NowFunc        func() time.Time // defaults to time.Now
}

// RegisterRoutes registers the dashboard API under /api.
func RegisterRoutes(r *gin.Engine, cfg HandlerConfig) {
	if cfg.NowFunc == nil {
		cfg.NowFunc = time.Now
	}

	v := validation.New()
	userStore := users.NewStore(cfg.DynamoDBClient, cfg.Tables.Users, cfg.Tables.Carts, cfg.Tables.Wishlists)
	productStore := products.NewStore(cfg.DynamoDBClient, cfg.Tables.Products)
	orderStore := orders.NewStore(cfg.DynamoDBClient, cfg.Tables.Orders)
	categoryStore := catalog.NewStore(cfg.DynamoDBClient, cfg.Tables.Categories)
	sellerAppStore := catalog.NewStore(cfg.DynamoDBClient, cfg.Tables.SellerApplications)
	publisher := aws.NewPublisher(cfg.SQSClient, cfg.QueueURL)

	api := r.Group("/api")

	api.GET("/users", func(c *gin.Context) {
		docs, err := userStore.List(c.Request.Context())
		if err != nil {
			serverError(c, err)
			return
		}
		c.JSON(http.StatusOK, docs)
	})

	api.GET("/products", func(c *gin.Context) {
		docs, err := productStore.List(c.Request.Context())
		if err != nil {
			serverError(c, err)
			return
		}
		c.JSON(http.StatusOK, docs)
	})

	// Arbitrary product fields pass through untouched; the gateway only
	// generates the id. createdAt is whatever the client sent, matching the
	// dashboard contract.
	api.POST("/products", func(c *gin.Context) {
		var doc map[string]interface{}
		if err := c.ShouldBindJSON(&doc); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request_body", "msg": err.Error()})
			return
		}
		if len(doc) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "empty_body"})
			return
		}

		doc["id"] = uuid.NewString()
		if err := productStore.Create(c.Request.Context(), doc); err != nil {
			serverError(c, err)
			return
		}
		c.JSON(http.StatusCreated, doc)
	})

	api.POST("/orders", func(c *gin.Context) {
		var req validation.CreateOrderRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			// BindAndValidate already wrote a 400
			return
		}

		items := make([]orders.Item, 0, len(req.Items))
		for _, it := range req.Items {
			items = append(items, orders.Item{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				Price:     it.Price,
			})
		}

		order := orders.Order{
			ID:        uuid.NewString(),
			UserID:    req.UserID,
			Items:     items,
			Total:     req.Total,
			Status:    orders.StatusPending,
			CreatedAt: cfg.NowFunc().UTC(),
		}

		created, err := orderStore.Create(c.Request.Context(), order)
		if err != nil {
			serverError(c, err)
			return
		}
		// stock decrements happen in the stream trigger once this write
		// commits
		c.JSON(http.StatusCreated, created)
	})

	api.GET("/orders", func(c *gin.Context) {
		docs, err := orderStore.ListByCreatedAtDesc(c.Request.Context())
		if err != nil {
			serverError(c, err)
			return
		}
		c.JSON(http.StatusOK, docs)
	})

	api.GET("/categories", func(c *gin.Context) {
		docs, err := categoryStore.List(c.Request.Context())
		if err != nil {
			serverError(c, err)
			return
		}
		c.JSON(http.StatusOK, docs)
	})

	api.GET("/seller-applications", func(c *gin.Context) {
		docs, err := sellerAppStore.ListByCreatedAtDesc(c.Request.Context())
		if err != nil {
			serverError(c, err)
			return
		}
		c.JSON(http.StatusOK, docs)
	})

	// Account removal is asynchronous: the gateway only publishes the
	// deletion event; the cleanup trigger deletes the documents.
	api.DELETE("/users/:uid", func(c *gin.Context) {
		uid := c.Param("uid")
		err := publisher.SendAccountDeleted(c.Request.Context(), uid, c.GetHeader("X-Request-Id"))
		if err != nil {
			serverError(c, err)
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"uid": uid, "status": "cleanup_queued"})
	})
}

func serverError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
