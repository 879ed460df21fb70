package main

import (
	"os"

	"tenantchat/backend/internal/app"
)

// @title           TenantChat API
// @version         1.0
// @description     Multi-tenant retrieval-grounded assistant backend.
// @BasePath        /api
func main() {
	os.Exit(app.Run())
}
