package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "SparkConnect electrician directory API",
        "title": "SparkConnect API",
        "version": "1.0"
    },
    "host": "localhost:5000",
    "basePath": "/",
    "schemes": ["http"],
    "paths": {
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "Process is alive"
                    }
                }
            }
        },
        "/api/electricians": {
            "get": {
                "tags": ["directory"],
                "summary": "List electricians",
                "produces": ["application/json"],
                "responses": {
                    "200": {
                        "description": "Listings without contact details"
                    }
                }
            }
        },
        "/api/electricians/{id}/review": {
            "post": {
                "tags": ["directory"],
                "summary": "Review an electrician",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "integer",
                        "required": true
                    },
                    {
                        "in": "body",
                        "name": "review",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "rating": {
                                    "type": "number",
                                    "example": 5
                                },
                                "name": {
                                    "type": "string",
                                    "example": "Adaeze O."
                                },
                                "comment": {
                                    "type": "string"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Review added, rating recalculated"
                    },
                    "404": {
                        "description": "Listing not found"
                    }
                }
            }
        },
        "/api/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register an account",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "account",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "name": {
                                    "type": "string",
                                    "example": "Sarah Johnson"
                                },
                                "email": {
                                    "type": "string",
                                    "example": "sarah@example.com"
                                },
                                "password": {
                                    "type": "string"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Account created; log in to open a session"
                    },
                    "409": {
                        "description": "Email already registered"
                    }
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login with email and password",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "credentials",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "email": {
                                    "type": "string",
                                    "example": "admin@sparkconnect.com"
                                },
                                "password": {
                                    "type": "string",
                                    "example": "admin123"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Session opened"
                    },
                    "401": {
                        "description": "Invalid email or password"
                    }
                }
            }
        },
        "/api/auth/me": {
            "get": {
                "tags": ["auth"],
                "summary": "Current session user",
                "produces": ["application/json"],
                "responses": {
                    "200": {
                        "description": "Session user, or null when logged out"
                    }
                }
            }
        },
        "/api/user/update": {
            "put": {
                "tags": ["user"],
                "summary": "Update the session user's profile",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "200": {
                        "description": "Profile updated"
                    },
                    "401": {
                        "description": "Authentication required"
                    }
                }
            }
        },
        "/api/upload": {
            "post": {
                "tags": ["media"],
                "summary": "Upload a media file",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "formData",
                        "name": "file",
                        "type": "file",
                        "required": true
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Stored web path"
                    },
                    "400": {
                        "description": "File type not allowed"
                    }
                }
            }
        },
        "/api/admin/users/{id}": {
            "delete": {
                "tags": ["admin"],
                "summary": "Delete a user account",
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "integer",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "User deleted"
                    },
                    "403": {
                        "description": "Admin access required"
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "SessionCookie": {
            "type": "apiKey",
            "name": "sc_session",
            "in": "cookie",
            "description": "Opaque session id issued by the login endpoints"
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5000",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "SparkConnect API",
	Description:      "SparkConnect electrician directory API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
