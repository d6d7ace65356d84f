// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package chat

import (
	"net/http"

	"StylistAI/app/api/stylist/internal/logic/chat"
	"StylistAI/app/api/stylist/internal/svc"
	"StylistAI/app/api/stylist/internal/types"

	"github.com/zeromicro/go-zero/rest/httpx"
)

func ExplainHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ExplainRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := chat.NewExplainLogic(r.Context(), svcCtx)
		resp, err := l.Explain(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
