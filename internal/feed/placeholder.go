package feed

import "github.com/whatyouseeau/socialfeed/internal/entity"

// ProfileURL is the brand's Instagram profile
const ProfileURL = "https://www.instagram.com/whatyouseeau/"

// Hand-picked posts shown whenever the live feed is unavailable.
// Never modify it, hand out copies via PlaceholderPosts.
var placeholderPosts = [...]entity.Post{
	{
		ID:        "1",
		Caption:   "Neon dreams in the warehouse. Another night, another room transformed. ✨ #WhatYouSee #LiveVisuals",
		MediaType: entity.MediaTypeImage,
		MediaURL:  "/instagram/placeholder-1.jpg",
		Permalink: ProfileURL,
		Timestamp: "2025-01-15T20:00:00+0000",
	},
	{
		ID:        "2",
		Caption:   "Projection mapping meets architecture. The walls come alive. 🌀",
		MediaType: entity.MediaTypeImage,
		MediaURL:  "/instagram/placeholder-2.jpg",
		Permalink: ProfileURL,
		Timestamp: "2025-01-12T22:30:00+0000",
	},
	{
		ID:        "3",
		Caption:   "Behind the scenes. Setting up for tonight's show. The calm before the chaos. 🎛️",
		MediaType: entity.MediaTypeImage,
		MediaURL:  "/instagram/placeholder-3.jpg",
		Permalink: ProfileURL,
		Timestamp: "2025-01-10T18:00:00+0000",
	},
	{
		ID:        "4",
		Caption:   "When the crowd becomes part of the art. Melbourne, you were electric. ⚡",
		MediaType: entity.MediaTypeImage,
		MediaURL:  "/instagram/placeholder-4.jpg",
		Permalink: ProfileURL,
		Timestamp: "2025-01-08T23:45:00+0000",
	},
	{
		ID:        "5",
		Caption:   "Light study #47. Experimenting with new colour palettes for the next installation.",
		MediaType: entity.MediaTypeImage,
		MediaURL:  "/instagram/placeholder-5.jpg",
		Permalink: ProfileURL,
		Timestamp: "2025-01-05T16:00:00+0000",
	},
	{
		ID:           "6",
		Caption:      "The moment right before the drop. Sydney warehouse sessions. 🔊",
		MediaType:    entity.MediaTypeVideo,
		MediaURL:     "/instagram/placeholder-6.mp4",
		ThumbnailURL: "/instagram/placeholder-6-thumb.jpg",
		Permalink:    ProfileURL,
		Timestamp:    "2025-01-03T21:00:00+0000",
	},
	{
		ID:        "7",
		Caption:   "Colour theory in practice. Every shade tells a story.",
		MediaType: entity.MediaTypeImage,
		MediaURL:  "/instagram/placeholder-7.jpg",
		Permalink: ProfileURL,
		Timestamp: "2024-12-28T19:30:00+0000",
	},
	{
		ID:        "8",
		Caption:   "Gallery takeover complete. Thank you to everyone who came through. 🙏",
		MediaType: entity.MediaTypeCarouselAlbum,
		MediaURL:  "/instagram/placeholder-8.jpg",
		Permalink: ProfileURL,
		Timestamp: "2024-12-25T14:00:00+0000",
	},
	{
		ID:        "9",
		Caption:   "New year, new visions. What do you want to see in 2025? 👀",
		MediaType: entity.MediaTypeImage,
		MediaURL:  "/instagram/placeholder-9.jpg",
		Permalink: ProfileURL,
		Timestamp: "2024-12-31T23:59:00+0000",
	},
}

// PlaceholderPosts returns a fresh copy of the fallback posts
func PlaceholderPosts() []entity.Post {
	posts := make([]entity.Post, len(placeholderPosts))
	copy(posts, placeholderPosts[:])

	return posts
}
