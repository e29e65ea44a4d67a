package echo

import e "github.com/labstack/echo/v4"

func RegisterRoutes(server *e.Echo, auth *AuthMiddleware, importHandler *ImportHandler, queryHandler *QueryHandler) {
	guard := []e.MiddlewareFunc{auth.Authenticate, RequireCapability(CapabilityEditApplications)}

	server.POST("/applications/bulk/import", importHandler.BulkImport, guard...)
	server.POST("/applications/bulk/import/file", importHandler.BulkImportFile, guard...)
	server.GET("/imports", queryHandler.ListImportJobs, guard...)
	server.GET("/imports/:id/errors", queryHandler.ListImportJobErrors, guard...)
}
