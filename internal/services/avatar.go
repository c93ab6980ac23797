package services

import (
  "bytes"
  "context"
  "fmt"
  "image"
  "image/color"
  "image/png"
  "math/rand"
  "os"
  "strings"
  "unicode/utf8"

  "github.com/fogleman/gg"
  "github.com/golang/freetype/truetype"
  "github.com/google/uuid"
  "golang.org/x/image/draw"
  "golang.org/x/image/font"
  "gorm.io/gorm"

  "github.com/yungbote/studyos-backend/internal/logger"
  "github.com/yungbote/studyos-backend/internal/types"
)

const (
  avatarRenderSize = 512
  avatarFinalSize  = 256
)

// AvatarService renders an initials avatar for a new user and uploads it to
// the bucket. Failure is non-fatal at the call site; registration proceeds
// without an avatar.
type AvatarService interface {
  CreateAndUploadUserAvatar(ctx context.Context, tx *gorm.DB, user *types.User) error
  GenerateUserAvatar(user *types.User) (bytes.Buffer, error)
}

type avatarService struct {
  log           *logger.Logger
  bucketService BucketService
  bgColors      []color.NRGBA
  fontFace      font.Face
}

func NewAvatarService(log *logger.Logger, bucketService BucketService) (AvatarService, error) {
  serviceLog := log.With("service", "AvatarService")

  fontPath := os.Getenv("AVATAR_FONT")
  if strings.TrimSpace(fontPath) == "" {
    return nil, fmt.Errorf("Env var AVATAR_FONT is empty")
  }
  fontBytes, err := os.ReadFile(fontPath)
  if err != nil {
    return nil, fmt.Errorf("could not read avatar font: %w", err)
  }
  parsedFont, err := truetype.Parse(fontBytes)
  if err != nil {
    return nil, fmt.Errorf("could not parse avatar font: %w", err)
  }
  face := truetype.NewFace(parsedFont, &truetype.Options{Size: float64(avatarRenderSize) * 0.42})

  return &avatarService{
    log:           serviceLog,
    bucketService: bucketService,
    bgColors: []color.NRGBA{
      {R: 0x4F, G: 0x46, B: 0xE5, A: 0xFF},
      {R: 0x05, G: 0x96, B: 0x69, A: 0xFF},
      {R: 0xD9, G: 0x77, B: 0x06, A: 0xFF},
      {R: 0xDC, G: 0x26, B: 0x26, A: 0xFF},
      {R: 0x7C, G: 0x3A, B: 0xED, A: 0xFF},
      {R: 0x0E, G: 0x74, B: 0x90, A: 0xFF},
    },
    fontFace: face,
  }, nil
}

func (avs *avatarService) CreateAndUploadUserAvatar(ctx context.Context, tx *gorm.DB, user *types.User) error {
  if user == nil {
    return fmt.Errorf("no user given")
  }
  if avs.bucketService == nil {
    return fmt.Errorf("avatar storage is not configured")
  }
  buf, err := avs.GenerateUserAvatar(user)
  if err != nil {
    return fmt.Errorf("Failed to generate user avatar: %w", err)
  }
  key := fmt.Sprintf("avatars/%s.png", uuid.New().String())
  if err := avs.bucketService.UploadFile(ctx, tx, key, &buf); err != nil {
    return fmt.Errorf("Failed to upload user avatar: %w", err)
  }
  user.AvatarURL = avs.bucketService.GetPublicURL(key)
  return nil
}

func (avs *avatarService) GenerateUserAvatar(user *types.User) (bytes.Buffer, error) {
  var out bytes.Buffer

  initials := userInitials(user)
  bg := avs.bgColors[rand.Intn(len(avs.bgColors))]

  dc := gg.NewContext(avatarRenderSize, avatarRenderSize)
  dc.SetColor(bg)
  dc.DrawCircle(float64(avatarRenderSize)/2, float64(avatarRenderSize)/2, float64(avatarRenderSize)/2)
  dc.Fill()

  dc.SetFontFace(avs.fontFace)
  dc.SetRGB(1, 1, 1)
  dc.DrawStringAnchored(initials, float64(avatarRenderSize)/2, float64(avatarRenderSize)/2, 0.5, 0.5)

  src := dc.Image()
  dst := image.NewNRGBA(image.Rect(0, 0, avatarFinalSize, avatarFinalSize))
  draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

  if err := png.Encode(&out, dst); err != nil {
    return out, fmt.Errorf("Failed to encode avatar png: %w", err)
  }
  return out, nil
}

func userInitials(user *types.User) string {
  initials := firstRune(user.FirstName) + firstRune(user.LastName)
  if initials == "" {
    initials = "?"
  }
  return initials
}

func firstRune(name string) string {
  trimmed := strings.TrimSpace(name)
  if trimmed == "" {
    return ""
  }
  r, _ := utf8.DecodeRuneInString(trimmed)
  return strings.ToUpper(string(r))
}
