package cache

import (
	"context"
	"fmt"
	"time"
)

// PostTTL bounds how stale the public single-post view may get.
const PostTTL = 1 * time.Minute

func PostKey(postID uint) string {
	return fmt.Sprintf("post:%d", postID)
}

// InvalidatePost drops the cached single-post view after an edit or delete.
func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}
