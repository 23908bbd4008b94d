package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/documind-ai/documind/app/core"
)

type HttpSrv struct {
	Core   *core.Core
	Engine *gin.Engine
}
