package main

//go:generate swag init -g cmd/server/main.go -o docs

// @title           Postmarket API
// @version         0.1.0
// @description     Prediction markets aggregated from scored social posts.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
