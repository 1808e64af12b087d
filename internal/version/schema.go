package version

// ImageSchemaVersion increments when derived build-image generation changes
// require image rebuilds.
//
// Bump for:
//   - Dockerfile generation logic changes
//   - Setup command rendering changes
//
// Don't bump for:
//   - CLI-only changes
//   - Bug fixes not affecting image content
const ImageSchemaVersion = 1
