package docs

import _ "github.com/swaggo/swag"

// @title           Task Tracker API
// @version         1.0
// @description     API for tracking tasks and events across a team

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token

// @tag.name Users
// @tag.description Signup, login and assignee lookup

// @tag.name Tasks
// @tag.description Task management operations

// @tag.name Events
// @tag.description Event management operations

// @tag.name Dashboards
// @tag.description Member and admin dashboards
