package source

import (
	"context"
	"net/http/httptest"
	"testing"

	"actcal/internal/model"
)

const azurLaneListFixture = `{
	"code": 0,
	"data": [
		{"id": 7001, "title": "「凛冬王冠」限时建造", "content": "<p>建造时间：2026-03-01 12:00:00 ~ 2026-03-15 11:59:59</p>", "image": "https://al/img/7001.jpg"},
		{"id": 7002, "title": "新增皮肤上架通知", "content": "<p>上架时间：2026-03-01 12:00:00起</p>", "image": ""},
		{"id": 7003, "title": "3月5日「凛冬王冠」版本更新公告", "content": "<p>更新时间：2026-03-05 06:00:00 ~ 2026-04-09 05:59:59</p><p>全新剧情开放</p>", "image": ""},
		{"id": 7004, "title": "维护完成开放建造奖励", "content": "<p>时间：2026-03-02 00:00:00 ~ 2026-03-09 23:59:59</p>", "image": ""}
	]
}`

func TestFetchAzurLane(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(azurLaneListFixture))
	defer srv.Close()

	p := newTestPipeline(t, &model.Config{AzurLaneListURL: srv.URL})
	events, ver, err := p.fetchAzurLane(context.Background())
	if err != nil {
		t.Fatalf("fetchAzurLane: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("events = %d (%+v), want 2", len(events), events)
	}

	build := events[0]
	if build.ID != "7001" {
		t.Fatalf("first event id = %q, want 7001", build.ID)
	}
	if build.StartTime != "2026-03-01T12:00:00+08:00" || build.EndTime != "2026-03-15T11:59:59+08:00" {
		t.Errorf("window = %q..%q, want body-extracted range", build.StartTime, build.EndTime)
	}
	if !build.IsGacha {
		t.Error("建造 notice not marked gacha")
	}
	if build.Banner != "https://al/img/7001.jpg" {
		t.Errorf("banner = %q", build.Banner)
	}

	// 7004 carries both a deny word (维护) and the allow word 建造; the
	// allowlist wins.
	reward := events[1]
	if reward.ID != "7004" {
		t.Fatalf("second event id = %q, want 7004", reward.ID)
	}

	if ver == nil {
		t.Fatal("version = nil, want notice resolved from body window")
	}
	if ver.Version != "凛冬王冠" {
		t.Errorf("version = %q, want quoted label", ver.Version)
	}
	if ver.AnnID != "7003" {
		t.Errorf("version ann id = %q", ver.AnnID)
	}
	if ver.StartTime != "2026-03-05T06:00:00+08:00" {
		t.Errorf("version start = %q", ver.StartTime)
	}
}

func TestFetchAzurLaneDropsNoticesWithoutFullRange(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(`{
		"code": 0,
		"data": [
			{"id": 7101, "title": "限时建造预告", "content": "<p>开启时间敬请期待</p>", "image": ""},
			{"id": 7102, "title": "限时建造", "content": "<p>截止至2026-03-09 23:59:59</p>", "image": ""}
		]
	}`))
	defer srv.Close()

	p := newTestPipeline(t, &model.Config{AzurLaneListURL: srv.URL})
	events, _, err := p.fetchAzurLane(context.Background())
	if err != nil {
		t.Fatalf("fetchAzurLane: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("events = %+v, want none without a full extracted range", events)
	}
}
