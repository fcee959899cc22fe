package engine

import "github.com/worldapptech/woosync/internal/entities"

// resolve turns a sync request into the ordered product list the run
// covers.
//
// Explicit IDs keep their request order; IDs for unknown or sync-disabled
// products are dropped silently because eligibility is a filter, not an
// error. "All enabled" yields eligible products in stable creation order.
// The image filter applies last, after either selection.
func (e *Engine) resolve(req Request) ([]entities.Product, error) {
	var selected []entities.Product
	var err error

	if len(req.ProductIDs) > 0 {
		selected, err = e.products.GetProductsByIDs(req.ProductIDs)
		if err != nil {
			return nil, err
		}
		eligible := selected[:0]
		for _, p := range selected {
			if p.SyncEnabled {
				eligible = append(eligible, p)
			}
		}
		selected = eligible
	} else if req.AllEnabled {
		selected, err = e.products.ListEnabled()
		if err != nil {
			return nil, err
		}
	}

	if req.WithImagesOnly {
		withImages := selected[:0]
		for _, p := range selected {
			if p.HasImage() {
				withImages = append(withImages, p)
			}
		}
		selected = withImages
	}

	return selected, nil
}
