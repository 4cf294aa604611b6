package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"cyberlink/internal/pkg/auth/jwt"
	"cyberlink/internal/pkg/limiter"
	"cyberlink/internal/pkg/logx"
	"cyberlink/internal/pkg/resp"
)

const (
	AuthRate     = 0.2
	AuthBurst    = 5
	OTPRate      = 0.05
	OTPBurst     = 2
	ConnectRate  = 0.2
	ConnectBurst = 5
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// It initializes IP-based rate limiters, configures CORS, and applies global and
// per-route middleware before mounting the API route groups and the messaging gateway.
func Router(deps *AppDeps) http.Handler {
	authLimiter := limiter.NewIPRateLimiter(rate.Limit(AuthRate), AuthBurst)
	otpLimiter := limiter.NewIPRateLimiter(rate.Limit(OTPRate), OTPBurst)
	connectLimiter := limiter.NewIPRateLimiter(rate.Limit(ConnectRate), ConnectBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	var wsUpgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.Environment == "development" {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "CyberLink Server",
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(jwt.IdentityExtractorMiddleware(deps.Config.JWTSecret))

		api.Route("/account", func(account chi.Router) {
			account.Post("/register", authLimiter.Middleware(HandleRegister(deps)).ServeHTTP)
			account.Post("/login", authLimiter.Middleware(HandleLogin(deps)).ServeHTTP)
			account.Post("/passwordotp", otpLimiter.Middleware(HandlePasswordOTP(deps)).ServeHTTP)
			account.Post("/changepassword", otpLimiter.Middleware(HandleChangePassword(deps)).ServeHTTP)
			account.Get("/authentication", HandleAuthentication(deps))
			account.Post("/deleteaccount", HandleDeleteAccount(deps))
		})

		api.Route("/user", func(user chi.Router) {
			user.Post("/editbiography", HandleEditBiography(deps))
			user.Post("/editpicture", HandleEditPicture(deps))
			user.Get("/myprofile", HandleMyProfile(deps))
			user.Get("/notifications", HandleNotifications(deps))
			user.Get("/followers", HandleFollowers(deps))
			user.Get("/following", HandleFollowing(deps))
		})

		api.Route("/follower", func(follower chi.Router) {
			follower.Get("/searchuser/{search}", HandleSearchUser(deps))
			follower.Get("/user/{username}", HandleUserProfile(deps))
			follower.Post("/follow", HandleFollow(deps))
			follower.Post("/unfollow", HandleUnfollow(deps))
			follower.Post("/block", HandleBlock(deps))
			follower.Post("/unblock", HandleUnblock(deps))
			follower.Get("/blocked", HandleBlockedUsers(deps))
		})

		api.Route("/post", func(post chi.Router) {
			post.Get("/posts", HandleFeed(deps))
			post.Get("/posts/{id}", HandleGetPost(deps))
			post.Get("/bookmarkedposts", HandleBookmarkedPosts(deps))
			post.Get("/comments/{id}", HandleListComments(deps))
			post.Post("/likepost/{id}", HandleLikePost(deps))
			post.Post("/unlikepost/{id}", HandleUnlikePost(deps))
			post.Post("/bookmarkpost/{id}", HandleBookmarkPost(deps))
			post.Post("/unbookmarkpost/{id}", HandleUnbookmarkPost(deps))
		})

		api.Route("/userpost", func(userpost chi.Router) {
			userpost.Post("/addpost", HandleAddPost(deps))
			userpost.Post("/editpost", HandleEditPost(deps))
			userpost.Post("/deletepost", HandleDeletePost(deps))
		})

		api.Route("/comment", func(comment chi.Router) {
			comment.Post("/comment", HandleAddComment(deps))
			comment.Post("/editcomment", HandleEditComment(deps))
			comment.Post("/deletecomment", HandleDeleteComment(deps))
		})

		api.Route("/story", func(story chi.Router) {
			story.Post("/addstory", HandleAddStory(deps))
			story.Get("/viewstory/{id}", HandleViewStory(deps))
		})

		api.Get("/image/*", HandleImageDownload(deps))

		api.Get("/message/connect", connectLimiter.Middleware(HandleMessageConnect(wsUpgrader, deps)).ServeHTTP)
	})

	return r
}
