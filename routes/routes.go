package routes

import (
	"net/http"
	"time"

	"recipehub/controllers"
	"recipehub/middlewares"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Deps carries every controller the router mounts.
type Deps struct {
	Log         *logrus.Logger
	JWTSecret   string
	CORSOrigins []string

	Auth      *controllers.AuthController
	Recipes   *controllers.RecipeController
	Planner   *controllers.PlannerController
	Goals     *controllers.GoalController
	DailyLogs *controllers.DailyLogController
	Meals     *controllers.MealController
	Activity  *controllers.ActivityLogController
	Schedules *controllers.ScheduleController
	Ratings   *controllers.RatingController
	Shopping  *controllers.ShoppingController
	Dashboard *controllers.DashboardController
	Stores    *controllers.StoreController
	Realtime  *controllers.RealtimeController
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if d.Log != nil {
		r.Use(middlewares.RequestLogger(d.Log))
	}
	corsCfg := cors.Config{
		AllowOrigins:     d.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(d.CORSOrigins) == 0 {
		corsCfg.AllowOrigins = nil
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	requireAuth := middlewares.AuthMiddleware(d.JWTSecret)

	auth := api.Group("/auth")
	{
		auth.POST("/register", d.Auth.Register)
		auth.POST("/login", d.Auth.Login)
		auth.POST("/forgot-password", d.Auth.ForgotPassword)
		auth.POST("/reset-password", d.Auth.ResetPassword)
		auth.GET("/me", requireAuth, d.Auth.Me)
	}

	recipes := api.Group("/recipes")
	{
		recipes.GET("/search", d.Recipes.Search)
		recipes.GET("/random", d.Recipes.Random)
		recipes.GET("/categories", d.Recipes.Categories)
		recipes.GET("/areas", d.Recipes.Areas)
		recipes.GET("/ingredients", d.Recipes.Ingredients)
		recipes.GET("/cuisines", d.Recipes.Cuisines)
		recipes.GET("/category/:category", d.Recipes.ByCategory)
		recipes.GET("/area/:area", d.Recipes.ByArea)
		recipes.GET("/:id", d.Recipes.GetByID)
		recipes.GET("/:id/instructions", d.Recipes.Instructions)
		recipes.POST("/recognize", d.Recipes.Recognize)
	}

	api.GET("/planner/day", d.Planner.DayPlan)
	api.GET("/nutrition/ingredient", d.Planner.IngredientNutrition)
	api.POST("/nutrition/track", d.Planner.TrackNutrition)

	tracking := api.Group("")
	tracking.Use(requireAuth)
	{
		tracking.GET("/goals", d.Goals.GetGoals)
		tracking.PUT("/goals", d.Goals.UpsertGoals)

		tracking.GET("/daily-logs", d.DailyLogs.GetDailyLogs)
		tracking.GET("/daily-logs/:date", d.DailyLogs.GetDailyLog)

		tracking.GET("/meals", d.Meals.GetMealEntries)
		tracking.POST("/meals", d.Meals.AddMealEntry)
		tracking.DELETE("/meals/:id", d.Meals.DeleteMealEntry)

		tracking.GET("/weights", d.Activity.GetWeights)
		tracking.POST("/weights", d.Activity.AddWeight)
		tracking.GET("/water", d.Activity.GetWater)
		tracking.POST("/water", d.Activity.AddWater)
		tracking.DELETE("/water/:id", d.Activity.DeleteWater)

		tracking.GET("/schedules", d.Schedules.GetMealSchedules)
		tracking.POST("/schedules", d.Schedules.AddMealSchedule)
		tracking.DELETE("/schedules/:id", d.Schedules.DeleteMealSchedule)

		tracking.GET("/ratings/favorites", d.Ratings.GetFavoriteRecipes)
		tracking.GET("/ratings/:recipeId", d.Ratings.GetRecipeRating)
		tracking.PUT("/ratings/:recipeId", d.Ratings.RateRecipe)

		tracking.GET("/shopping-lists", d.Shopping.ListLists)
		tracking.POST("/shopping-lists", d.Shopping.CreateList)
		tracking.POST("/shopping-lists/generate", d.Shopping.GenerateFromMeals)
		tracking.GET("/shopping-lists/:id", d.Shopping.GetList)
		tracking.DELETE("/shopping-lists/:id", d.Shopping.DeleteList)
		tracking.POST("/shopping-lists/:id/items", d.Shopping.AddItem)
		tracking.PATCH("/shopping-list-items/:itemId/toggle", d.Shopping.ToggleItem)
		tracking.DELETE("/shopping-list-items/:itemId", d.Shopping.DeleteItem)

		tracking.GET("/dashboard", d.Dashboard.GetDashboard)

		tracking.GET("/ws", d.Realtime.TrackingWS)
	}

	me := api.Group("/me")
	me.Use(requireAuth)
	{
		me.GET("/favorites", d.Stores.ListFavorites)
		me.GET("/favorites/:recipeId", d.Stores.IsFavorite)
		me.PUT("/favorites/:recipeId", d.Stores.AddFavorite)
		me.DELETE("/favorites/:recipeId", d.Stores.RemoveFavorite)
		me.POST("/favorites/:recipeId/toggle", d.Stores.ToggleFavorite)

		me.GET("/shopping-list", d.Stores.ListShoppingItems)
		me.POST("/shopping-list", d.Stores.AddShoppingItems)
		me.DELETE("/shopping-list", d.Stores.ClearShoppingItems)
		me.PATCH("/shopping-list/:itemId", d.Stores.UpdateShoppingItem)
		me.POST("/shopping-list/:itemId/toggle", d.Stores.ToggleShoppingItem)
		me.DELETE("/shopping-list/:itemId", d.Stores.RemoveShoppingItem)

		me.GET("/custom-recipes", d.Stores.ListCustomRecipes)
		me.POST("/custom-recipes", d.Stores.AddCustomRecipe)
		me.GET("/custom-recipes/:recipeId", d.Stores.GetCustomRecipe)
		me.PATCH("/custom-recipes/:recipeId", d.Stores.UpdateCustomRecipe)
		me.DELETE("/custom-recipes/:recipeId", d.Stores.RemoveCustomRecipe)
	}

	return r
}
