// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package handler

import (
	"net/http"

	"StylistAI/app/api/stylist/internal/handler/auth"
	"StylistAI/app/api/stylist/internal/handler/catalog"
	"StylistAI/app/api/stylist/internal/handler/chat"
	"StylistAI/app/api/stylist/internal/handler/conversation"
	"StylistAI/app/api/stylist/internal/handler/health"
	"StylistAI/app/api/stylist/internal/svc"

	"github.com/zeromicro/go-zero/rest"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodPost,
				Path:    "/v1/auth/register",
				Handler: auth.RegisterHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/v1/auth/login",
				Handler: auth.LoginHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/v1/health",
				Handler: health.HealthHandler(serverCtx),
			},
		},
	)

	server.AddRoutes(
		rest.WithMiddlewares(
			[]rest.Middleware{serverCtx.AuthMiddleware},
			[]rest.Route{
				{
					Method:  http.MethodPost,
					Path:    "/v1/chat/converse",
					Handler: chat.ConverseHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/v1/chat/explain",
					Handler: chat.ExplainHandler(serverCtx),
				},
				{
					Method:  http.MethodGet,
					Path:    "/v1/conversations",
					Handler: conversation.ListConversationsHandler(serverCtx),
				},
				{
					Method:  http.MethodGet,
					Path:    "/v1/conversations/:id",
					Handler: conversation.GetConversationHandler(serverCtx),
				},
				{
					Method:  http.MethodDelete,
					Path:    "/v1/conversations/:id",
					Handler: conversation.DeleteConversationHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/v1/catalog/garments",
					Handler: catalog.SyncGarmentsHandler(serverCtx),
				},
			}...,
		),
	)
}
