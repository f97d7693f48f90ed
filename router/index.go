package router

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"hostel_manager/handler"
	"hostel_manager/middleware"
	"hostel_manager/validate"
)

func SetupRoutes(app *fiber.App, alloc *handler.AllocationHandler) {
	api := app.Group("/api", logger.New())

	auth := api.Group("/auth")
	auth.Post("/register", validate.Register(), handler.Register)
	auth.Post("/login", validate.Login(), handler.Login)
	auth.Get("/me", middleware.Protected(), handler.Me)

	rooms := api.Group("/rooms")
	rooms.Get("/available", alloc.AvailableRooms)
	rooms.Get("/", middleware.Protected(), middleware.RequireAdmin(), handler.GetRooms)
	rooms.Get("/:roomId", middleware.Protected(), validate.GetById("roomId"), handler.GetRoomById)
	rooms.Post("/", middleware.Protected(), middleware.RequireAdmin(), validate.CreateRoom(), handler.CreateRoom)
	rooms.Put("/:roomId", middleware.Protected(), middleware.RequireAdmin(), validate.EditRoom("roomId"), handler.EditRoom)
	rooms.Delete("/:roomId", middleware.Protected(), middleware.RequireAdmin(), validate.GetById("roomId"), alloc.DeleteRoom)

	students := api.Group("/students", middleware.Protected(), middleware.RequireAdmin())
	students.Get("/", handler.GetStudents)
	students.Put("/:studentId", validate.EditStudent("studentId"), handler.EditStudent)
	students.Delete("/:studentId", validate.GetById("studentId"), alloc.DeleteStudent)

	allocations := api.Group("/allocations", middleware.Protected())
	allocations.Post("/", validate.ClaimRoom(), alloc.BookRoom)
	allocations.Get("/me", alloc.MyRoom)
	allocations.Get("/history", alloc.History)
	allocations.Get("/room/:roomId", middleware.RequireAdmin(), validate.GetById("roomId"), alloc.CurrentOccupant)
	allocations.Delete("/:allocationId", validate.GetById("allocationId"), alloc.ReleaseRoom)

	admin := api.Group("/admin", middleware.Protected(), middleware.RequireAdmin())
	admin.Get("/dashboard", alloc.Dashboard)
	admin.Get("/allocations", alloc.ActiveAllocations)

	maintenance := api.Group("/maintenance", middleware.Protected())
	maintenance.Post("/", validate.CreateMaintenance(), alloc.CreateMaintenance)
	maintenance.Get("/my", handler.GetMyMaintenance)
	maintenance.Get("/", middleware.RequireAdmin(), handler.GetMaintenance)
	maintenance.Put("/:requestId", middleware.RequireAdmin(), validate.UpdateMaintenance("requestId"), handler.UpdateMaintenance)

	meals := api.Group("/meals", middleware.Protected())
	meals.Get("/plans", handler.GetMealPlans)
	meals.Post("/plans", middleware.RequireAdmin(), validate.CreateMealPlan(), handler.CreateMealPlan)
	meals.Post("/orders", validate.CreateMealOrder(), handler.CreateMealOrder)
	meals.Get("/orders/my", handler.GetMyMealOrders)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/rooms", websocket.New(handler.RoomsWebsocket))
}
