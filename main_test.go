package main

import (
	"testing"

	server "github.com/KanapuramVaishnavi/Core/server"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestRunWiresServerOptions(t *testing.T) {
	isTest = true
	defer func() { isTest = false }()

	var captured server.Options
	startServer = func(opts server.Options) {
		captured = opts
	}

	main()
	run()

	defaults := server.GetDefaultOptions()
	require.Equal(t, defaults.CacheEnabled, captured.CacheEnabled)
	require.Equal(t, defaults.MongoEnabled, captured.MongoEnabled)
	require.Equal(t, defaults.WebServerEnabled, captured.WebServerEnabled)
	require.Equal(t, defaults.WebServerPort, captured.WebServerPort)

	// jobs and migrations are suppressed under test but stay wired
	require.False(t, captured.JobsEnabled)
	require.False(t, captured.MigrationEnabled)
	require.NotNil(t, captured.JobsHandler)
	require.NotNil(t, captured.MigrationHandler)
	require.NotNil(t, captured.WebServerPreHandler)

	// the isTest guards make the handlers safe to run without mongo or redis
	captured.JobsHandler()
	captured.MigrationHandler()
	captured.WebServerPreHandler(gin.New())
}
