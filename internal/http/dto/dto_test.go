package dto

import (
	"testing"
	"time"

	"github.com/pribylovaa/go-videohub/internal/models"
	"github.com/pribylovaa/go-videohub/internal/pagination"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      any
		wantErr string
	}{
		{name: "comment ok", in: CreateCommentRequest{VideoID: uuid.NewString(), Value: "hi"}},
		{name: "comment empty value", in: CreateCommentRequest{VideoID: uuid.NewString()}, wantErr: "Value: required"},
		{name: "comment bad parent", in: CreateCommentRequest{ParentID: "x", Value: "hi"}, wantErr: "ParentID: uuid"},
		{name: "reaction ok", in: ReactionRequest{Type: "dislike"}},
		{name: "reaction unknown", in: ReactionRequest{Type: "love"}, wantErr: "Type: oneof"},
		{name: "subscribe bad id", in: SubscribeRequest{CreatorID: "nope"}, wantErr: "CreatorID: uuid"},
		{name: "query limit too big", in: ListQuery{Limit: 101}, wantErr: "Limit: max"},
		{name: "query zero limit", in: ListQuery{}},
		{name: "update empty body", in: UpdateVideoRequest{}},
		{name: "update empty title", in: UpdateVideoRequest{Title: ptr("")}, wantErr: "Title: min"},
		{name: "update bad visibility", in: UpdateVideoRequest{Visibility: ptr("unlisted")}, wantErr: "Visibility: oneof"},
		{name: "update bad category", in: UpdateVideoRequest{CategoryID: ptr("cat")}, wantErr: "CategoryID: uuid"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Validate(tt.in)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestPageFrom_NextCursorNullOnLastPage(t *testing.T) {
	t.Parallel()

	last := &pagination.Page[models.Playlist]{Items: []models.Playlist{{ID: uuid.New()}}}
	b, err := json.Marshal(PageFrom(last, PlaylistFrom))
	require.NoError(t, err)
	require.Contains(t, string(b), `"next_cursor":null`)

	more := &pagination.Page[models.Playlist]{Items: []models.Playlist{}, HasMore: true, NextCursor: "abc"}
	b, err = json.Marshal(PageFrom(more, PlaylistFrom))
	require.NoError(t, err)
	require.Contains(t, string(b), `"items":[]`)
	require.Contains(t, string(b), `"next_cursor":"abc"`)
}

func TestVideoFrom_OptionalFields(t *testing.T) {
	t.Parallel()

	like := models.ReactionLike
	cat := uuid.New()
	now := time.Now().UTC()

	v := VideoFrom(models.Video{
		ID:             uuid.New(),
		CategoryID:     &cat,
		Visibility:     models.VisibilityPublic,
		ViewerReaction: &like,
		AddedAt:        &now,
	})

	require.Equal(t, cat.String(), *v.CategoryID)
	require.Equal(t, "like", *v.ViewerReaction)
	require.Equal(t, &now, v.AddedAt)
	require.Nil(t, v.ViewedAt)

	c := CommentFrom(models.Comment{ID: uuid.New()})
	require.Nil(t, c.ParentID)
	require.Nil(t, c.ViewerReaction)
}

func ptr[T any](v T) *T { return &v }

func TestVideoUpdateFrom(t *testing.T) {
	t.Parallel()

	id, user, cat := uuid.New(), uuid.New(), uuid.New()

	u := VideoUpdateFrom(id, user, UpdateVideoRequest{
		Title:      ptr("new"),
		CategoryID: ptr(cat.String()),
		Visibility: ptr("public"),
	})
	require.Equal(t, id, u.ID)
	require.Equal(t, user, u.UserID)
	require.Equal(t, "new", *u.Title)
	require.Nil(t, u.Description)
	require.Equal(t, cat, *u.CategoryID)
	require.Equal(t, models.VisibilityPublic, *u.Visibility)

	require.True(t, VideoUpdateFrom(id, user, UpdateVideoRequest{}).Empty())
}
