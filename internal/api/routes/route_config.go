package routes

import (
	"Pantry-Tracker/internal/api/handlers"
	"Pantry-Tracker/internal/middleware"
	"Pantry-Tracker/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                 *fiber.App
	FoodHandler         handlers.FoodHandler
	NotificationHandler handlers.NotificationHandler
	CartHandler         handlers.CartHandler
	ConsumptionHandler  handlers.ConsumptionHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.FoodItems()
	c.Notifications()
	c.ShoppingCart()
	c.AutoConsumption()
	c.GuestRoute()
}

func (c *Config) FoodItems() {
	food := c.App.Group("/api/v1/food-items")
	{
		food.Get("/", c.FoodHandler.GetFoodItems)
		food.Get("/dashboard", c.FoodHandler.GetDashboardStats)
		food.Get("/:id", c.FoodHandler.GetFoodItemDetails)
		food.Post("/", c.FoodHandler.AddFoodItem)
		food.Patch("/:id", c.FoodHandler.UpdateFoodItem)
		food.Delete("/:id", c.FoodHandler.DeleteFoodItem)
		food.Post("/:id/consume", c.FoodHandler.ConsumeFoodItem)
	}
}

func (c *Config) Notifications() {
	notifications := c.App.Group("/api/v1/notifications")
	{
		notifications.Get("/", c.NotificationHandler.GetNotifications)
		notifications.Patch("/:id/read", c.NotificationHandler.MarkAsRead)
	}
}

func (c *Config) ShoppingCart() {
	cart := c.App.Group("/api/v1/shopping-cart")
	{
		cart.Get("/", c.CartHandler.GetShoppingCart)
		cart.Post("/", c.CartHandler.AddToShoppingCart)
		cart.Delete("/:id", c.CartHandler.RemoveFromShoppingCart)
	}
}

func (c *Config) AutoConsumption() {
	auto := c.App.Group("/api/v1/auto-consumption")
	{
		auto.Get("/status", c.ConsumptionHandler.GetTriggerStatus)
		auto.Post("/process", c.Middleware.SchedulerAuth(c.JWTService), c.ConsumptionHandler.ProcessAutoConsumption)
		auto.Post("/trigger", c.Middleware.SchedulerAuth(c.JWTService), c.ConsumptionHandler.TriggerAutoConsumption)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
