package routes

import (
	"github.com/ghaniswara/people-swipe/internal/middleware"
	routesPeople "github.com/ghaniswara/people-swipe/internal/routes/people"
	"github.com/ghaniswara/people-swipe/internal/usecase/feed"
	"github.com/ghaniswara/people-swipe/internal/usecase/reaction"
	"github.com/labstack/echo"
)

func InitRoutes(e *echo.Echo, feedCase feed.IFeedUseCase, reactionCase reaction.IReactionUseCase) {
	people := e.Group("/people")
	deviceIdentity := middleware.DeviceIdentity()

	people.GET("", func(c echo.Context) error {
		return routesPeople.ListHandler(c, feedCase)
	})
	people.GET("/liked", func(c echo.Context) error {
		return routesPeople.LikedHandler(c, reactionCase)
	}, deviceIdentity)
	people.POST("/:id/like", func(c echo.Context) error {
		return routesPeople.LikeHandler(c, reactionCase)
	}, deviceIdentity)
	people.POST("/:id/dislike", func(c echo.Context) error {
		return routesPeople.DislikeHandler(c, reactionCase)
	}, deviceIdentity)
}
