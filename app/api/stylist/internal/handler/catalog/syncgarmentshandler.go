// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package catalog

import (
	"net/http"

	"StylistAI/app/api/stylist/internal/logic/catalog"
	"StylistAI/app/api/stylist/internal/svc"
	"StylistAI/app/api/stylist/internal/types"

	"github.com/zeromicro/go-zero/rest/httpx"
)

func SyncGarmentsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.SyncGarmentsRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := catalog.NewSyncGarmentsLogic(r.Context(), svcCtx)
		resp, err := l.SyncGarments(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
