package services

import (
  "context"
  "sort"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yungbote/studyos-backend/internal/repos"
  "github.com/yungbote/studyos-backend/internal/types"
)

// In-memory repo fakes backing the service tests. Soft deletes are modeled
// with a per-id tombstone set so deleted-inclusive reads stay possible.

type fakeCourseRepo struct {
  courses map[uuid.UUID]*types.Course
  deleted map[uuid.UUID]bool
}

func newFakeCourseRepo() *fakeCourseRepo {
  return &fakeCourseRepo{courses: map[uuid.UUID]*types.Course{}, deleted: map[uuid.UUID]bool{}}
}

func (f *fakeCourseRepo) Create(ctx context.Context, tx *gorm.DB, courses []*types.Course) ([]*types.Course, error) {
  for _, c := range courses {
    c.CreatedAt = time.Now()
    f.courses[c.ID] = c
  }
  return courses, nil
}

func (f *fakeCourseRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Course, error) {
  out := []*types.Course{}
  for _, id := range ids {
    if c, ok := f.courses[id]; ok && !f.deleted[id] {
      out = append(out, c)
    }
  }
  return out, nil
}

func (f *fakeCourseRepo) GetByIDsAny(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Course, error) {
  out := []*types.Course{}
  for _, id := range ids {
    if c, ok := f.courses[id]; ok {
      out = append(out, c)
    }
  }
  return out, nil
}

func (f *fakeCourseRepo) GetByAuthorID(ctx context.Context, tx *gorm.DB, authorID uuid.UUID, limit int) ([]*types.Course, error) {
  out := []*types.Course{}
  for id, c := range f.courses {
    if c.AuthorID == authorID && !f.deleted[id] {
      out = append(out, c)
    }
  }
  sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
  if limit > 0 && len(out) > limit {
    out = out[:limit]
  }
  return out, nil
}

func (f *fakeCourseRepo) Update(ctx context.Context, tx *gorm.DB, course *types.Course) error {
  f.courses[course.ID] = course
  return nil
}

func (f *fakeCourseRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
  for _, id := range ids {
    f.deleted[id] = true
  }
  return nil
}

type fakeChapterRepo struct {
  chapters map[uuid.UUID]*types.Chapter
  deleted  map[uuid.UUID]bool
}

func newFakeChapterRepo() *fakeChapterRepo {
  return &fakeChapterRepo{chapters: map[uuid.UUID]*types.Chapter{}, deleted: map[uuid.UUID]bool{}}
}

func (f *fakeChapterRepo) Create(ctx context.Context, tx *gorm.DB, chapters []*types.Chapter) ([]*types.Chapter, error) {
  for _, ch := range chapters {
    f.chapters[ch.ID] = ch
  }
  return chapters, nil
}

func (f *fakeChapterRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Chapter, error) {
  out := []*types.Chapter{}
  for _, id := range ids {
    if ch, ok := f.chapters[id]; ok && !f.deleted[id] {
      out = append(out, ch)
    }
  }
  return out, nil
}

func (f *fakeChapterRepo) GetByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.Chapter, error) {
  out := []*types.Chapter{}
  for _, courseID := range courseIDs {
    for id, ch := range f.chapters {
      if ch.CourseID == courseID && !f.deleted[id] {
        out = append(out, ch)
      }
    }
  }
  sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
  return out, nil
}

func (f *fakeChapterRepo) MaxPositionForCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (int, error) {
  max := 0
  for id, ch := range f.chapters {
    if ch.CourseID == courseID && !f.deleted[id] && ch.Position > max {
      max = ch.Position
    }
  }
  return max, nil
}

func (f *fakeChapterRepo) Update(ctx context.Context, tx *gorm.DB, chapter *types.Chapter) error {
  f.chapters[chapter.ID] = chapter
  return nil
}

func (f *fakeChapterRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
  for _, id := range ids {
    f.deleted[id] = true
  }
  return nil
}

type fakeProgressRepo struct {
  rows    map[uuid.UUID]*types.Progress
  deleted map[uuid.UUID]bool
}

func newFakeProgressRepo() *fakeProgressRepo {
  return &fakeProgressRepo{rows: map[uuid.UUID]*types.Progress{}, deleted: map[uuid.UUID]bool{}}
}

func (f *fakeProgressRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Progress) ([]*types.Progress, error) {
  for _, r := range rows {
    f.rows[r.ID] = r
  }
  return rows, nil
}

func (f *fakeProgressRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Progress, error) {
  out := []*types.Progress{}
  for id, r := range f.rows {
    if r.UserID == userID && !f.deleted[id] {
      out = append(out, r)
    }
  }
  return out, nil
}

func (f *fakeProgressRepo) GetCompletedByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Progress, error) {
  out := []*types.Progress{}
  for id, r := range f.rows {
    if r.UserID == userID && r.Status == types.ProgressStatusCompleted && !f.deleted[id] {
      out = append(out, r)
    }
  }
  return out, nil
}

func (f *fakeProgressRepo) GetByUserAndChapterIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, chapterIDs []uuid.UUID) ([]*types.Progress, error) {
  wanted := map[uuid.UUID]bool{}
  for _, id := range chapterIDs {
    wanted[id] = true
  }
  out := []*types.Progress{}
  for id, r := range f.rows {
    if r.UserID == userID && wanted[r.ChapterID] && !f.deleted[id] {
      out = append(out, r)
    }
  }
  return out, nil
}

func (f *fakeProgressRepo) Update(ctx context.Context, tx *gorm.DB, row *types.Progress) error {
  f.rows[row.ID] = row
  return nil
}

func (f *fakeProgressRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
  for _, id := range ids {
    f.deleted[id] = true
  }
  return nil
}

func (f *fakeProgressRepo) SoftDeleteByUserAndChapterIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, chapterIDs []uuid.UUID) error {
  wanted := map[uuid.UUID]bool{}
  for _, id := range chapterIDs {
    wanted[id] = true
  }
  for id, r := range f.rows {
    if r.UserID == userID && wanted[r.ChapterID] {
      f.deleted[id] = true
    }
  }
  return nil
}

type fakeResourceRepo struct {
  resources map[uuid.UUID]*types.Resource
  deleted   map[uuid.UUID]bool
}

func newFakeResourceRepo() *fakeResourceRepo {
  return &fakeResourceRepo{resources: map[uuid.UUID]*types.Resource{}, deleted: map[uuid.UUID]bool{}}
}

func (f *fakeResourceRepo) Create(ctx context.Context, tx *gorm.DB, resources []*types.Resource) ([]*types.Resource, error) {
  for _, r := range resources {
    f.resources[r.ID] = r
  }
  return resources, nil
}

func (f *fakeResourceRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Resource, error) {
  out := []*types.Resource{}
  for _, id := range ids {
    if r, ok := f.resources[id]; ok && !f.deleted[id] {
      out = append(out, r)
    }
  }
  return out, nil
}

func (f *fakeResourceRepo) GetByChapterIDs(ctx context.Context, tx *gorm.DB, chapterIDs []uuid.UUID) ([]*types.Resource, error) {
  wanted := map[uuid.UUID]bool{}
  for _, id := range chapterIDs {
    wanted[id] = true
  }
  out := []*types.Resource{}
  for id, r := range f.resources {
    if wanted[r.ChapterID] && !f.deleted[id] {
      out = append(out, r)
    }
  }
  return out, nil
}

func (f *fakeResourceRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
  for _, id := range ids {
    f.deleted[id] = true
  }
  return nil
}

func (f *fakeResourceRepo) SoftDeleteByChapterIDs(ctx context.Context, tx *gorm.DB, chapterIDs []uuid.UUID) error {
  wanted := map[uuid.UUID]bool{}
  for _, id := range chapterIDs {
    wanted[id] = true
  }
  for id, r := range f.resources {
    if wanted[r.ChapterID] {
      f.deleted[id] = true
    }
  }
  return nil
}

type fakeNoteRepo struct {
  notes   map[uuid.UUID]*types.Note
  deleted map[uuid.UUID]bool
}

func newFakeNoteRepo() *fakeNoteRepo {
  return &fakeNoteRepo{notes: map[uuid.UUID]*types.Note{}, deleted: map[uuid.UUID]bool{}}
}

func (f *fakeNoteRepo) Create(ctx context.Context, tx *gorm.DB, notes []*types.Note) ([]*types.Note, error) {
  for _, n := range notes {
    n.CreatedAt = time.Now()
    f.notes[n.ID] = n
  }
  return notes, nil
}

func (f *fakeNoteRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Note, error) {
  out := []*types.Note{}
  for _, id := range ids {
    if n, ok := f.notes[id]; ok && !f.deleted[id] {
      out = append(out, n)
    }
  }
  return out, nil
}

func (f *fakeNoteRepo) List(ctx context.Context, tx *gorm.DB, filter repos.NoteFilter) ([]*types.Note, error) {
  out := []*types.Note{}
  for id, n := range f.notes {
    if f.deleted[id] || n.UserID != filter.UserID {
      continue
    }
    if filter.CourseID != nil && (n.CourseID == nil || *n.CourseID != *filter.CourseID) {
      continue
    }
    if filter.ChapterID != nil && (n.ChapterID == nil || *n.ChapterID != *filter.ChapterID) {
      continue
    }
    out = append(out, n)
  }
  sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
  if filter.Limit > 0 && len(out) > filter.Limit {
    out = out[:filter.Limit]
  }
  return out, nil
}

func (f *fakeNoteRepo) Update(ctx context.Context, tx *gorm.DB, note *types.Note) error {
  f.notes[note.ID] = note
  return nil
}

func (f *fakeNoteRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
  for _, id := range ids {
    f.deleted[id] = true
  }
  return nil
}

func (f *fakeNoteRepo) SoftDeleteByUserAndCourseID(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) error {
  for id, n := range f.notes {
    if n.UserID == userID && n.CourseID != nil && *n.CourseID == courseID {
      f.deleted[id] = true
    }
  }
  return nil
}

type fakeImageNoteRepo struct {
  notes   map[uuid.UUID]*types.ImageNote
  deleted map[uuid.UUID]bool
}

func newFakeImageNoteRepo() *fakeImageNoteRepo {
  return &fakeImageNoteRepo{notes: map[uuid.UUID]*types.ImageNote{}, deleted: map[uuid.UUID]bool{}}
}

func (f *fakeImageNoteRepo) Create(ctx context.Context, tx *gorm.DB, notes []*types.ImageNote) ([]*types.ImageNote, error) {
  for _, n := range notes {
    f.notes[n.ID] = n
  }
  return notes, nil
}

func (f *fakeImageNoteRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ImageNote, error) {
  out := []*types.ImageNote{}
  for _, id := range ids {
    if n, ok := f.notes[id]; ok && !f.deleted[id] {
      out = append(out, n)
    }
  }
  return out, nil
}

func (f *fakeImageNoteRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.ImageNote, error) {
  out := []*types.ImageNote{}
  for id, n := range f.notes {
    if n.UserID == userID && !f.deleted[id] {
      out = append(out, n)
    }
  }
  if limit > 0 && len(out) > limit {
    out = out[:limit]
  }
  return out, nil
}

func (f *fakeImageNoteRepo) GetByUserAndCourseID(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) ([]*types.ImageNote, error) {
  out := []*types.ImageNote{}
  for id, n := range f.notes {
    if n.UserID == userID && n.CourseID != nil && *n.CourseID == courseID && !f.deleted[id] {
      out = append(out, n)
    }
  }
  return out, nil
}

func (f *fakeImageNoteRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
  for _, id := range ids {
    f.deleted[id] = true
  }
  return nil
}

type fakeApiKeyRepo struct {
  keys map[uuid.UUID]*types.ApiKey
}

func newFakeApiKeyRepo() *fakeApiKeyRepo {
  return &fakeApiKeyRepo{keys: map[uuid.UUID]*types.ApiKey{}}
}

func (f *fakeApiKeyRepo) Create(ctx context.Context, tx *gorm.DB, key *types.ApiKey) (*types.ApiKey, error) {
  key.CreatedAt = time.Now()
  f.keys[key.ID] = key
  return key, nil
}

func (f *fakeApiKeyRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ApiKey, error) {
  out := []*types.ApiKey{}
  for _, id := range ids {
    if k, ok := f.keys[id]; ok {
      out = append(out, k)
    }
  }
  return out, nil
}

func (f *fakeApiKeyRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ApiKey, error) {
  out := []*types.ApiKey{}
  for _, k := range f.keys {
    if k.UserID == userID {
      out = append(out, k)
    }
  }
  sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
  return out, nil
}

func (f *fakeApiKeyRepo) GetByHash(ctx context.Context, tx *gorm.DB, keyHash string) (*types.ApiKey, error) {
  for _, k := range f.keys {
    if k.KeyHash == keyHash {
      return k, nil
    }
  }
  return nil, nil
}

func (f *fakeApiKeyRepo) CountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
  var count int64
  for _, k := range f.keys {
    if k.UserID == userID {
      count++
    }
  }
  return count, nil
}

func (f *fakeApiKeyRepo) UpdateLastUsed(ctx context.Context, tx *gorm.DB, keyID uuid.UUID, when time.Time) error {
  if k, ok := f.keys[keyID]; ok {
    k.LastUsed = &when
  }
  return nil
}

func (f *fakeApiKeyRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
  for _, id := range ids {
    delete(f.keys, id)
  }
  return nil
}

type fakeUserSettingsRepo struct {
  rows map[uuid.UUID]*types.UserSettings
}

func newFakeUserSettingsRepo() *fakeUserSettingsRepo {
  return &fakeUserSettingsRepo{rows: map[uuid.UUID]*types.UserSettings{}}
}

func (f *fakeUserSettingsRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserSettings, error) {
  return f.rows[userID], nil
}

func (f *fakeUserSettingsRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.UserSettings) error {
  if existing, ok := f.rows[row.UserID]; ok {
    existing.DailyGoal = row.DailyGoal
    return nil
  }
  if row.ID == uuid.Nil {
    row.ID = uuid.New()
  }
  f.rows[row.UserID] = row
  return nil
}
