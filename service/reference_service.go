package services

import (
	"context"

	"dataset-uploader/api/targcontrol"
	"dataset-uploader/config"
	"dataset-uploader/models"

	"go.uber.org/zap"
)

// ReferenceService fetches the remote catalogs a run resolves names against.
// Catalogs are fetched fresh on every call and never cached.
type ReferenceService struct {
	api    targcontrol.TargControlAPI
	logger *zap.Logger
}

// NewReferenceService constructs a ReferenceService over one run's client.
func NewReferenceService(api targcontrol.TargControlAPI, logger *zap.Logger) *ReferenceService {
	return &ReferenceService{api: api, logger: logger.Named("ReferenceService")}
}

// FetchLocations reads the first locations page. On failure it returns an
// empty catalog and a *models.ReferenceDataError.
func (rs *ReferenceService) FetchLocations(ctx context.Context) (models.ReferenceCatalog, error) {
	catalog := models.NewReferenceCatalog()
	page, err := rs.api.GetLocations(ctx, config.LOCATIONS_PAGE, config.LOCATIONS_PAGE_SIZE)
	if err != nil {
		rs.logger.Error("failed to fetch locations", zap.Error(err))
		return catalog, &models.ReferenceDataError{Resource: "locations", Err: err}
	}
	for _, l := range page.Data {
		catalog.Add(string(l.Name), l.ID)
	}
	if len(page.Data) >= config.LOCATIONS_PAGE_SIZE {
		rs.logger.Warn("locations page is full, remaining pages are not read",
			zap.Int("page_size", config.LOCATIONS_PAGE_SIZE))
	}
	rs.logger.Info("fetched locations", zap.Int("count", catalog.Len()))
	return catalog, nil
}

// FetchSkills reads the employee skills.
func (rs *ReferenceService) FetchSkills(ctx context.Context) (models.ReferenceCatalog, error) {
	catalog := models.NewReferenceCatalog()
	skills, err := rs.api.GetSkills(ctx)
	if err != nil {
		rs.logger.Error("failed to fetch skills", zap.Error(err))
		return catalog, &models.ReferenceDataError{Resource: "skills", Err: err}
	}
	for _, s := range skills {
		catalog.Add(string(s.Name), s.ID)
	}
	rs.logger.Info("fetched skills", zap.Int("count", catalog.Len()))
	return catalog, nil
}

// FetchMetrics reads the forecaster metrics.
func (rs *ReferenceService) FetchMetrics(ctx context.Context) (models.ReferenceCatalog, error) {
	catalog := models.NewReferenceCatalog()
	metrics, err := rs.api.GetMetrics(ctx)
	if err != nil {
		rs.logger.Error("failed to fetch metrics", zap.Error(err))
		return catalog, &models.ReferenceDataError{Resource: "metrics", Err: err}
	}
	for _, m := range metrics {
		catalog.Add(string(m.Name), m.ID)
	}
	rs.logger.Info("fetched metrics", zap.Int("count", catalog.Len()))
	return catalog, nil
}

// FetchAvailablePatterns returns, in response order, the ids of pattern
// templates not yet bound to a dataset.
func (rs *ReferenceService) FetchAvailablePatterns(ctx context.Context) ([]string, error) {
	patterns, err := rs.api.GetPatterns(ctx)
	if err != nil {
		rs.logger.Error("failed to fetch patterns", zap.Error(err))
		return []string{}, &models.ReferenceDataError{Resource: "patterns", Err: err}
	}
	ids := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p.IsAvailable() {
			ids = append(ids, p.ID)
		}
	}
	rs.logger.Info("fetched patterns", zap.Int("total", len(patterns)), zap.Int("available", len(ids)))
	return ids, nil
}

// Catalogs is the reference data shared read-only by one run.
type Catalogs struct {
	Locations models.ReferenceCatalog
	Skills    models.ReferenceCatalog
}

// LoadCatalogs fetches skills and locations. A skills failure is returned as
// a warning and leaves an empty skill catalog; a locations failure or an
// empty location catalog is fatal.
func (rs *ReferenceService) LoadCatalogs(ctx context.Context) (*Catalogs, []string, error) {
	var warnings []string

	skills, err := rs.FetchSkills(ctx)
	if err != nil {
		warnings = append(warnings, err.Error()+"; datasets will carry no skill data")
	}

	locations, err := rs.FetchLocations(ctx)
	if err != nil {
		return nil, warnings, err
	}
	if locations.IsEmpty() {
		return nil, warnings, &models.ReferenceDataError{Resource: "locations", Err: errEmptyCatalog}
	}

	return &Catalogs{Locations: locations, Skills: skills}, warnings, nil
}

// Listing fetches every catalog for inspection. Individual failures become
// warnings.
func (rs *ReferenceService) Listing(ctx context.Context) *models.CatalogListing {
	listing := &models.CatalogListing{
		Locations:         []models.Location{},
		Skills:            []models.Skill{},
		Metrics:           []models.Metric{},
		AvailablePatterns: []string{},
	}

	if page, err := rs.api.GetLocations(ctx, config.LOCATIONS_PAGE, config.LOCATIONS_PAGE_SIZE); err != nil {
		listing.Warnings = append(listing.Warnings, (&models.ReferenceDataError{Resource: "locations", Err: err}).Error())
	} else {
		listing.Locations = append(listing.Locations, page.Data...)
	}
	if skills, err := rs.api.GetSkills(ctx); err != nil {
		listing.Warnings = append(listing.Warnings, (&models.ReferenceDataError{Resource: "skills", Err: err}).Error())
	} else {
		listing.Skills = append(listing.Skills, skills...)
	}
	if metrics, err := rs.api.GetMetrics(ctx); err != nil {
		listing.Warnings = append(listing.Warnings, (&models.ReferenceDataError{Resource: "metrics", Err: err}).Error())
	} else {
		listing.Metrics = append(listing.Metrics, metrics...)
	}
	if ids, err := rs.FetchAvailablePatterns(ctx); err != nil {
		listing.Warnings = append(listing.Warnings, err.Error())
	} else {
		listing.AvailablePatterns = ids
	}
	return listing
}
