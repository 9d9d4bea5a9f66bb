package main

//go:generate swag init -g cmd/server/main.go -o docs

// @title           Journal X API
// @version         0.1.0
// @description     Trading journal with AI commentary, screenshot analysis, balance ledger, and social feed.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
