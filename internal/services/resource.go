package services

import (
  "context"
  "errors"
  "fmt"
  "strings"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yungbote/studyos-backend/internal/logger"
  "github.com/yungbote/studyos-backend/internal/normalization"
  "github.com/yungbote/studyos-backend/internal/repos"
  "github.com/yungbote/studyos-backend/internal/types"
)

const maxResourceNameLen = 255

type CreateResourceInput struct {
  ChapterID uuid.UUID
  Name      string
  Type      string
  URL       *string
  FileID    *string
}

type ResourceService interface {
  ListResources(ctx context.Context, userID, chapterID uuid.UUID) ([]*types.Resource, error)
  CreateResource(ctx context.Context, userID uuid.UUID, input CreateResourceInput) (*types.Resource, error)
  GetResource(ctx context.Context, userID, resourceID uuid.UUID) (*types.Resource, error)
  DeleteResource(ctx context.Context, userID, resourceID uuid.UUID) error
}

type resourceService struct {
  db             *gorm.DB
  log            *logger.Logger
  resourceRepo   repos.ResourceRepo
  chapterService ChapterService
  bucket         BucketService
}

// NewResourceService wires resources under the chapter ownership chain. A
// nil bucket disables blob cleanup for file-backed resources.
func NewResourceService(db *gorm.DB, log *logger.Logger, resourceRepo repos.ResourceRepo, chapterService ChapterService, bucket BucketService) ResourceService {
  serviceLog := log.With("service", "ResourceService")
  return &resourceService{db: db, log: serviceLog, resourceRepo: resourceRepo, chapterService: chapterService, bucket: bucket}
}

func (s *resourceService) ListResources(ctx context.Context, userID, chapterID uuid.UUID) ([]*types.Resource, error) {
  if userID == uuid.Nil {
    return nil, ErrUnauthorized
  }
  if _, err := s.chapterService.AuthorizeChapter(ctx, nil, userID, chapterID); err != nil {
    return nil, err
  }
  resources, err := s.resourceRepo.GetByChapterIDs(ctx, nil, []uuid.UUID{chapterID})
  if err != nil {
    return nil, fmt.Errorf("Failed to list resources: %w", err)
  }
  if resources == nil {
    resources = []*types.Resource{}
  }
  return resources, nil
}

func validResourceType(t string) bool {
  for _, valid := range types.ValidResourceTypes() {
    if t == valid {
      return true
    }
  }
  return false
}

func (s *resourceService) CreateResource(ctx context.Context, userID uuid.UUID, input CreateResourceInput) (*types.Resource, error) {
  if userID == uuid.Nil {
    return nil, ErrUnauthorized
  }
  if _, err := s.chapterService.AuthorizeChapter(ctx, nil, userID, input.ChapterID); err != nil {
    return nil, err
  }

  name := normalization.TrimInputString(input.Name)
  if name == "" {
    return nil, fmt.Errorf("%w: name is required", ErrInvalid)
  }
  resourceType := normalization.ParseInputString(input.Type)
  if !validResourceType(resourceType) {
    return nil, fmt.Errorf("%w: type must be one of %s", ErrInvalid, strings.Join(types.ValidResourceTypes(), ", "))
  }
  if types.ResourceTypeRequiresURL(resourceType) {
    if input.URL == nil || normalization.TrimInputString(*input.URL) == "" {
      return nil, fmt.Errorf("%w: url is required for %s resources", ErrInvalid, resourceType)
    }
  }

  resource := &types.Resource{
    ID:        uuid.New(),
    ChapterID: input.ChapterID,
    Name:      normalization.ClampString(name, maxResourceNameLen),
    Type:      resourceType,
    URL:       input.URL,
    FileID:    input.FileID,
  }
  created, err := s.resourceRepo.Create(ctx, nil, []*types.Resource{resource})
  if err != nil {
    return nil, fmt.Errorf("Failed to create resource: %w", err)
  }
  return created[0], nil
}

func (s *resourceService) authorizeResource(ctx context.Context, userID, resourceID uuid.UUID) (*types.Resource, error) {
  resources, err := s.resourceRepo.GetByIDs(ctx, nil, []uuid.UUID{resourceID})
  if err != nil {
    return nil, fmt.Errorf("Failed to load resource: %w", err)
  }
  if len(resources) == 0 || resources[0] == nil {
    return nil, ErrNotFound
  }
  resource := resources[0]
  if _, err := s.chapterService.AuthorizeChapter(ctx, nil, userID, resource.ChapterID); err != nil {
    return nil, err
  }
  return resource, nil
}

func (s *resourceService) GetResource(ctx context.Context, userID, resourceID uuid.UUID) (*types.Resource, error) {
  if userID == uuid.Nil {
    return nil, ErrUnauthorized
  }
  return s.authorizeResource(ctx, userID, resourceID)
}

func (s *resourceService) DeleteResource(ctx context.Context, userID, resourceID uuid.UUID) error {
  if userID == uuid.Nil {
    return ErrUnauthorized
  }
  resource, err := s.authorizeResource(ctx, userID, resourceID)
  if err != nil {
    return err
  }
  if err := s.resourceRepo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{resource.ID}); err != nil {
    return fmt.Errorf("Failed to delete resource: %w", err)
  }
  // Blob cleanup is best-effort; a missing object is not a failure.
  if s.bucket != nil && resource.FileID != nil && *resource.FileID != "" {
    if err := s.bucket.DeleteFile(ctx, nil, *resource.FileID); err != nil && !errors.Is(err, ErrObjectNotFound) {
      s.log.Warn("Failed to delete resource file", "error", err, "file_id", *resource.FileID)
    }
  }
  return nil
}
