package utils

import (
	"os"
	"strings"
)

type ServerConfig struct {
	Addr        string
	DatasetPath string
	CORSOrigins []string
}

func LoadServerConfig() ServerConfig {
	addr := os.Getenv("FLIXHUB_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	dataset := os.Getenv("FLIXHUB_DATASET")
	if dataset == "" {
		dataset = "data/netflix_titles.csv"
	}

	origins := []string{"http://localhost:3000"}
	if raw := os.Getenv("FLIXHUB_CORS_ORIGINS"); raw != "" {
		origins = origins[:0]
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return ServerConfig{
		Addr:        addr,
		DatasetPath: dataset,
		CORSOrigins: origins,
	}
}
