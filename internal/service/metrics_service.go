package service

import (
	"SimPulse/internal/api/dto"
	"SimPulse/internal/model"
	"SimPulse/internal/pkg/consts"
	"SimPulse/internal/pkg/redis"
	"SimPulse/internal/pkg/util"
	"SimPulse/internal/platform"
	"SimPulse/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"sort"
	"time"

	"github.com/goccy/go-json"
)

// 时间范围标识，与前端约定
const (
	RangeToday = "today"
	RangeWeek  = "week"
	RangeMonth = "month"
)

var validMetrics = map[string]struct{}{
	"views":    {},
	"likes":    {},
	"comments": {},
	"shares":   {},
}

type MetricsService interface {
	// CollectHourlySnapshots 对全部已发布记录执行一轮指标采集。
	// 单条记录失败只记日志不中断，整轮尽力而为。
	CollectHourlySnapshots(ctx context.Context) error
	// GetMetricsOverTime 返回最近 days 天的增量时序。
	// days<=1 按小时分桶，否则按 UTC 自然日分桶；空桶补零，升序返回。
	GetMetricsOverTime(ctx context.Context, days int, platformName string, metric string) (*dto.MetricSeriesDTO, error)
	// GetAggregatedMetrics 返回单条发布记录在窗口内的累计值与增长量
	GetAggregatedMetrics(ctx context.Context, uploadID uint64, timeRange string) (*dto.AggregatedMetricsDTO, error)
	// CleanupOldSnapshots 删除超过保留期的快照
	CleanupOldSnapshots(ctx context.Context) error
	// GetSnapshotStats 返回快照表诊断统计
	GetSnapshotStats(ctx context.Context) (*dto.SnapshotStatsDTO, error)
}

type metricsServiceImpl struct {
	uploadRepo    repository.UploadRepo
	snapshotRepo  repository.MetricSnapshotRepo
	platforms     platform.Registry
	cache         redis.Cache
	fetchTimeout  time.Duration
	retentionDays int
	now           func() time.Time
}

func NewMetricsService(
	uploadRepo repository.UploadRepo,
	snapshotRepo repository.MetricSnapshotRepo,
	platforms platform.Registry,
	cache redis.Cache,
	fetchTimeout time.Duration,
	retentionDays int,
) MetricsService {
	if fetchTimeout <= 0 {
		fetchTimeout = 10 * time.Second
	}
	if retentionDays <= 0 {
		retentionDays = consts.SnapshotRetentionDays
	}
	return &metricsServiceImpl{
		uploadRepo:    uploadRepo,
		snapshotRepo:  snapshotRepo,
		platforms:     platforms,
		cache:         cache,
		fetchTimeout:  fetchTimeout,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

func (s *metricsServiceImpl) CollectHourlySnapshots(ctx context.Context) error {
	uploads, err := s.uploadRepo.ListByStatus(ctx, consts.UploadStatusPublished)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	bucketStart := util.StartOfHourUTC(now)
	year, dayOfYear, hour := util.HourBucketOf(bucketStart)

	collected := 0
	for _, upload := range uploads {
		if err := s.collectUpload(ctx, upload, now, bucketStart, year, dayOfYear, hour); err != nil {
			log.ErrorContext(ctx, "collect upload metrics failed",
				"upload_id", upload.ID,
				"platform", upload.Platform,
				"err", err)
			continue
		}
		collected++
	}

	if s.cache != nil {
		_ = s.cache.DelPrefix(ctx, consts.MetricsSeriesKey)
		_ = s.cache.DelPrefix(ctx, consts.SnapshotStatsKey)
	}

	log.InfoContext(ctx, "hourly snapshot collection finished",
		"upload_count", len(uploads),
		"collected", collected,
		"hour", hour)
	return nil
}

// collectUpload 采集单条发布记录：拉平台指标 → 事务内读基线、算增量、落桶。
// 基线读取与快照写入在同一事务内，避免并发采集互踩。
func (s *metricsServiceImpl) collectUpload(
	ctx context.Context,
	upload *model.Upload,
	now time.Time,
	bucketStart time.Time,
	year int, dayOfYear int, hour int,
) error {
	svc, err := s.platforms.Get(upload.Platform)
	if err != nil {
		return err
	}

	// 单次拉取独立超时，单个卡死的平台不能拖垮整轮采集
	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	current, err := svc.GetVideoMetrics(fetchCtx, upload.PlatformID)
	if err != nil {
		return err
	}

	return s.snapshotRepo.InTx(ctx, func(tx repository.MetricSnapshotRepo) error {
		// 基线：严格早于本小时桶边界的最近一条快照
		baseline, err := tx.GetLatestBefore(ctx, upload.ID, bucketStart)
		if err != nil {
			return err
		}

		deltas := reconcileDeltas(*current, baselineOf(baseline))

		existing, err := tx.GetByBucket(ctx, upload.ID, year, dayOfYear, hour)
		if err != nil {
			return err
		}

		if existing == nil {
			return tx.Create(ctx, &model.MetricSnapshot{
				UploadID:      upload.ID,
				Year:          year,
				DayOfYear:     dayOfYear,
				Hour:          hour,
				Timestamp:     now,
				Views:         current.Views,
				Likes:         current.Likes,
				Comments:      current.Comments,
				Shares:        current.Shares,
				ViewsDelta:    util.PtrInt(deltas.Views),
				LikesDelta:    util.PtrInt(deltas.Likes),
				CommentsDelta: util.PtrInt(deltas.Comments),
				SharesDelta:   util.PtrInt(deltas.Shares),
			})
		}

		// 同一小时内重复采集：原地刷新累计值、重算增量，桶不重复
		existing.Views = current.Views
		existing.Likes = current.Likes
		existing.Comments = current.Comments
		existing.Shares = current.Shares
		existing.ViewsDelta = util.PtrInt(deltas.Views)
		existing.LikesDelta = util.PtrInt(deltas.Likes)
		existing.CommentsDelta = util.PtrInt(deltas.Comments)
		existing.SharesDelta = util.PtrInt(deltas.Shares)
		existing.Timestamp = now
		return tx.Update(ctx, existing)
	})
}

func (s *metricsServiceImpl) GetMetricsOverTime(ctx context.Context, days int, platformName string, metric string) (*dto.MetricSeriesDTO, error) {
	if days <= 0 {
		return nil, ErrParamInvalid
	}
	if _, ok := validMetrics[metric]; !ok {
		return nil, ErrMetricUnsupported
	}

	cacheKey := consts.MetricsSeriesKey + fmt.Sprintf("%d:%s:%s", days, platformName, metric)
	if s.cache != nil {
		if val, err := s.cache.Get(ctx, cacheKey); err == nil && val != "" {
			var res dto.MetricSeriesDTO
			if err = json.Unmarshal([]byte(val), &res); err == nil {
				return &res, nil
			}
		}
	}

	now := s.now().UTC()
	since := now.Add(-time.Duration(days) * 24 * time.Hour)
	hourly := days <= 1

	snaps, err := s.snapshotRepo.ListSince(ctx, since, platformName)
	if err != nil {
		return nil, err
	}

	keys, buckets := makeBuckets(since, now, hourly)

	if allDeltasPresent(snaps, metric) {
		// 快路径：写入时已预计算增量，直接按采集时间落桶求和
		for _, snap := range snaps {
			key := bucketKeyOf(snap.Timestamp, hourly)
			if b, ok := buckets[key]; ok {
				b.value += util.IntOrZero(metricDelta(snap, metric))
				b.count++
			}
		}
	} else {
		// 回退路径：存在早于增量预计算的旧快照，按条目在线重算
		if err = s.sumRecomputedDeltas(ctx, snaps, metric, since, hourly, buckets); err != nil {
			return nil, err
		}
	}

	points := make([]*dto.MetricPointDTO, 0, len(keys))
	for _, key := range keys {
		points = append(points, &dto.MetricPointDTO{Date: key, Value: buckets[key].value})
	}

	res := &dto.MetricSeriesDTO{
		Days:     days,
		Platform: platformName,
		Metric:   metric,
		Points:   points,
	}

	if s.cache != nil {
		if payload, err := json.Marshal(res); err == nil {
			ttl := util.StartOfHourUTC(now).Add(time.Hour).Sub(now)
			_ = s.cache.Set(ctx, cacheKey, string(payload), ttl)
		}
	}

	return res, nil
}

// sumRecomputedDeltas 按发布记录分组、时间升序回放累计值，
// 用与写入路径相同的回退容忍规则在线重算增量后落桶。
// 每组的起始累计值取窗口前最近一条快照，没有则为零。
func (s *metricsServiceImpl) sumRecomputedDeltas(
	ctx context.Context,
	snaps []*model.MetricSnapshot,
	metric string,
	since time.Time,
	hourly bool,
	buckets map[string]*seriesBucket,
) error {
	groups := make(map[uint64][]*model.MetricSnapshot)
	for _, snap := range snaps {
		groups[snap.UploadID] = append(groups[snap.UploadID], snap)
	}

	for uploadID, group := range groups {
		sort.Slice(group, func(i, j int) bool {
			return group[i].Timestamp.Before(group[j].Timestamp)
		})

		prev := 0
		seed, err := s.snapshotRepo.GetLatestBefore(ctx, uploadID, since)
		if err != nil {
			return err
		}
		if seed != nil {
			prev = metricValue(seed, metric)
		}

		for _, snap := range group {
			cur := metricValue(snap, metric)
			delta := computeDelta(cur, prev)
			prev = cur

			key := bucketKeyOf(snap.Timestamp, hourly)
			if b, ok := buckets[key]; ok {
				b.value += delta
				b.count++
			}
		}
	}
	return nil
}

func (s *metricsServiceImpl) GetAggregatedMetrics(ctx context.Context, uploadID uint64, timeRange string) (*dto.AggregatedMetricsDTO, error) {
	now := s.now().UTC()

	var since time.Time
	switch timeRange {
	case RangeToday:
		since = util.GetMidnightUTC(now)
	case RangeWeek:
		since = now.AddDate(0, 0, -7)
	case RangeMonth:
		since = now.AddDate(0, 0, -30)
	default:
		return nil, ErrRangeUnsupported
	}

	upload, err := s.uploadRepo.GetByID(ctx, uploadID)
	if err != nil {
		return nil, err
	}
	if upload == nil {
		return nil, ErrUploadNotFound
	}

	snaps, err := s.snapshotRepo.ListForUploadInRange(ctx, uploadID, since, now)
	if err != nil {
		return nil, err
	}

	res := &dto.AggregatedMetricsDTO{UploadID: uploadID, Range: timeRange}
	if len(snaps) == 0 {
		return res, nil
	}

	latest := snaps[len(snaps)-1]
	earliest := snaps[0]

	res.TotalViews = latest.Views
	res.TotalLikes = latest.Likes
	res.TotalComments = latest.Comments
	res.TotalShares = latest.Shares
	res.Growth = dto.MetricGrowthDTO{
		Views:    latest.Views - earliest.Views,
		Likes:    latest.Likes - earliest.Likes,
		Comments: latest.Comments - earliest.Comments,
		Shares:   latest.Shares - earliest.Shares,
	}
	return res, nil
}

func (s *metricsServiceImpl) CleanupOldSnapshots(ctx context.Context) error {
	cutoff := s.now().UTC().AddDate(0, 0, -s.retentionDays)

	deleted, err := s.snapshotRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "old metric snapshots cleaned up",
		"cutoff", cutoff,
		"deleted", deleted)
	return nil
}

func (s *metricsServiceImpl) GetSnapshotStats(ctx context.Context) (*dto.SnapshotStatsDTO, error) {
	if s.cache != nil {
		if val, err := s.cache.Get(ctx, consts.SnapshotStatsKey); err == nil && val != "" {
			var res dto.SnapshotStatsDTO
			if err = json.Unmarshal([]byte(val), &res); err == nil {
				return &res, nil
			}
		}
	}

	stats, err := s.snapshotRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	res := &dto.SnapshotStatsDTO{
		Total:       stats.Total,
		Today:       stats.Today,
		Oldest:      stats.Oldest,
		LastUpdated: s.now().UTC(),
	}

	// 采集结束时失效，过期时间只兜底
	if s.cache != nil {
		if payload, err := json.Marshal(res); err == nil {
			_ = s.cache.Set(ctx, consts.SnapshotStatsKey, string(payload), 10*time.Minute)
		}
	}
	return res, nil
}

type seriesBucket struct {
	value int
	count int
}

// makeBuckets 先铺满整个窗口的空桶，数据稀疏时序列依然连续，
// 图表端不需要自行补洞。返回升序的桶键与查找表。
func makeBuckets(since time.Time, now time.Time, hourly bool) ([]string, map[string]*seriesBucket) {
	keys := make([]string, 0)
	buckets := make(map[string]*seriesBucket)

	var cursor, end time.Time
	var step time.Duration
	if hourly {
		cursor = util.StartOfHourUTC(since)
		end = util.StartOfHourUTC(now)
		step = time.Hour
	} else {
		cursor = util.GetMidnightUTC(since)
		end = util.GetMidnightUTC(now)
		step = 24 * time.Hour
	}

	for !cursor.After(end) {
		key := bucketKeyOf(cursor, hourly)
		keys = append(keys, key)
		buckets[key] = &seriesBucket{}
		cursor = cursor.Add(step)
	}
	return keys, buckets
}

func bucketKeyOf(t time.Time, hourly bool) string {
	if hourly {
		return util.StartOfHourUTC(t).Format(time.RFC3339)
	}
	return util.GetMidnightUTC(t).Format(time.DateOnly)
}

func allDeltasPresent(snaps []*model.MetricSnapshot, metric string) bool {
	for _, snap := range snaps {
		if metricDelta(snap, metric) == nil {
			return false
		}
	}
	return true
}

func metricValue(snap *model.MetricSnapshot, metric string) int {
	switch metric {
	case "views":
		return snap.Views
	case "likes":
		return snap.Likes
	case "comments":
		return snap.Comments
	case "shares":
		return snap.Shares
	}
	return 0
}

func metricDelta(snap *model.MetricSnapshot, metric string) *int {
	switch metric {
	case "views":
		return snap.ViewsDelta
	case "likes":
		return snap.LikesDelta
	case "comments":
		return snap.CommentsDelta
	case "shares":
		return snap.SharesDelta
	}
	return nil
}
