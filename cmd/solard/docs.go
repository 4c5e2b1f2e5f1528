package main

// General API documentation for swaggo. Run `make swagger-gen` to generate docs.
//
// @title           Solar Power Prediction API
// @version         2.0
// @description     Production-ready API for solar irradiance forecasting.
//
// @contact.name   solard maintainers
//
// @BasePath  /
//
// @schemes http
