package desk

import "github.com/erazemk/assetdesk/internal/model"

// CanSeeAsset reports whether viewer may see an asset. Admins see every
// asset, other users only what is assigned to them.
func CanSeeAsset(a *model.Asset, viewer *model.User) bool {
	if viewer == nil {
		return false
	}
	return isAdmin(viewer) || a.AssignedTo(viewer.ID)
}

// VisibleAssets filters assets down to what viewer may see.
func VisibleAssets(assets []model.Asset, viewer *model.User) []model.Asset {
	if isAdmin(viewer) {
		return assets
	}
	out := []model.Asset{}
	for i := range assets {
		if CanSeeAsset(&assets[i], viewer) {
			out = append(out, assets[i])
		}
	}
	return out
}

// VisibleRequests filters requests down to what viewer may see. Admins see
// every request, other users only their own.
func VisibleRequests(requests []model.Request, viewer *model.User) []model.Request {
	if isAdmin(viewer) {
		return requests
	}
	out := []model.Request{}
	if viewer == nil {
		return out
	}
	for _, r := range requests {
		if r.RequestedBy.ID == viewer.ID {
			out = append(out, r)
		}
	}
	return out
}
