package router

import (
	allochandler "kse_backend/internal/feature/allocation/transport/handler"
	authhandler "kse_backend/internal/feature/auth/transport/handler"
	siphandler "kse_backend/internal/feature/sip/transport/handler"
	"kse_backend/internal/platform/http/handler"
	jwtmw "kse_backend/internal/platform/jwt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(authHandler *authhandler.AuthHandler, alloc *allochandler.AllocationHandler,
	sip *siphandler.SipHandler) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規ユーザー登録
	r.POST("/signup", authHandler.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", authHandler.Login)

	// 認証必須のルート
	auth := r.Group("/")
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	auth.Use(jwtmw.AuthRequired())
	{
		auth.GET("/calculate-investment", alloc.Calculate)
		auth.GET("/sip", sip.Simulate)
	}

	return r
}
