package memory

import (
	"context"

	"vidtok/internal/core/domain"
	"vidtok/internal/core/ports"
)

// SampleVideos is the fixed demo feed. A real deployment would replace the
// seeding with a fetch from a content service.
func SampleVideos() []*domain.Video {
	return []*domain.Video{
		{
			ID:          "1",
			URL:         "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4",
			Thumbnail:   "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/images/BigBuckBunny.jpg",
			Title:       "Big Buck Bunny",
			Description: "A funny animated short film about a rabbit 🐰 #animation #funny #shorts",
			Likes:       125400,
			Comments:    2341,
			Shares:      892,
			Creator: domain.Creator{
				ID:       "1",
				Username: "animator_pro",
				Avatar:   "https://api.dicebear.com/7.x/avataaars/svg?seed=animator_pro",
				Verified: true,
			},
		},
		{
			ID:          "2",
			URL:         "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ElephantsDream.mp4",
			Thumbnail:   "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/images/ElephantsDream.jpg",
			Title:       "Elephants Dream",
			Description: "Mind-blowing CGI animation that will make you think 🤯 #cgi #animation #art",
			Likes:       98760,
			Comments:    1876,
			Shares:      543,
			Creator: domain.Creator{
				ID:       "2",
				Username: "cgi_master",
				Avatar:   "https://api.dicebear.com/7.x/avataaars/svg?seed=cgi_master",
			},
		},
		{
			ID:          "3",
			URL:         "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ForBiggerBlazes.mp4",
			Thumbnail:   "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/images/ForBiggerBlazes.jpg",
			Title:       "For Bigger Blazes",
			Description: "Epic action sequence that will blow your mind! 💥 #action #epic #cinema",
			Likes:       234567,
			Comments:    4521,
			Shares:      1234,
			Creator: domain.Creator{
				ID:       "3",
				Username: "action_director",
				Avatar:   "https://api.dicebear.com/7.x/avataaars/svg?seed=action_director",
				Verified: true,
			},
		},
	}
}

// SeedSampleFeed loads the demo videos into a repository.
func SeedSampleFeed(ctx context.Context, repo ports.VideoRepository) error {
	for _, v := range SampleVideos() {
		if err := repo.Put(ctx, v); err != nil {
			return err
		}
	}
	return nil
}
