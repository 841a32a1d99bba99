package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Automated Attendance API",
        "description": "Accounts, courses and dashboard endpoints for the attendance clients",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "AdminID": {"type": "apiKey", "in": "header", "name": "admin-id"},
        "AdminPassword": {"type": "apiKey", "in": "header", "name": "admin-password"},
        "BearerAuth": {"type": "apiKey", "in": "header", "name": "Authorization"}
    },
    "tags": [
        {"name": "Authentication", "description": "Role logins and logouts"},
        {"name": "Accounts", "description": "Student and instructor administration"},
        {"name": "Courses", "description": "Course records and schedules"},
        {"name": "Dashboard", "description": "Admin statistics"},
        {"name": "UserLogs", "description": "Account audit trail"}
    ],
    "paths": {
        "/admin/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Exchange admin credentials for a token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AdminLoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/AdminLoginResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/instructors/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Instructor login",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/InstructorLoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LoginResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/students/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Student login",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentLoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LoginResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/instructors/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Instructor logout",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LogoutRequest"}}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/students/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Student logout",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LogoutRequest"}}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/session": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Describe the bearer token's session",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Accounts"],
                "summary": "List students",
                "security": [{"AdminID": [], "AdminPassword": []}, {"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Account"}}}
                }
            },
            "post": {
                "tags": ["Accounts"],
                "summary": "Create student",
                "security": [{"AdminID": [], "AdminPassword": []}, {"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAccountRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Account"}},
                    "409": {"description": "Duplicate ID", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/students/{id}": {
            "put": {
                "tags": ["Accounts"],
                "summary": "Update student identity",
                "security": [{"AdminID": [], "AdminPassword": []}, {"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateAccountRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Account"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "delete": {
                "tags": ["Accounts"],
                "summary": "Delete student",
                "security": [{"AdminID": [], "AdminPassword": []}, {"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/instructors": {
            "get": {
                "tags": ["Accounts"],
                "summary": "List instructors",
                "security": [{"AdminID": [], "AdminPassword": []}, {"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Account"}}}
                }
            },
            "post": {
                "tags": ["Accounts"],
                "summary": "Create instructor",
                "security": [{"AdminID": [], "AdminPassword": []}, {"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAccountRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Account"}},
                    "409": {"description": "Duplicate ID", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/instructors/{id}": {
            "put": {
                "tags": ["Accounts"],
                "summary": "Update instructor identity",
                "security": [{"AdminID": [], "AdminPassword": []}, {"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateAccountRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Account"}}
                }
            },
            "delete": {
                "tags": ["Accounts"],
                "summary": "Delete instructor",
                "security": [{"AdminID": [], "AdminPassword": []}, {"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "List courses",
                "security": [{"AdminID": [], "AdminPassword": []}, {"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Course"}}}
                }
            },
            "post": {
                "tags": ["Courses"],
                "summary": "Create course",
                "security": [{"AdminID": [], "AdminPassword": []}, {"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Course"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/courses/{id}": {
            "get": {
                "tags": ["Courses"],
                "summary": "Get course",
                "security": [{"AdminID": [], "AdminPassword": []}, {"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Course"}}}
            },
            "put": {
                "tags": ["Courses"],
                "summary": "Replace course",
                "security": [{"AdminID": [], "AdminPassword": []}, {"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseInput"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Course"}}}
            },
            "delete": {
                "tags": ["Courses"],
                "summary": "Delete course",
                "security": [{"AdminID": [], "AdminPassword": []}, {"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/courses/update-instructor-ids": {
            "post": {
                "tags": ["Courses"],
                "summary": "Replace instructor names with idNumbers on courses",
                "security": [{"AdminID": [], "AdminPassword": []}, {"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateInstructorIDsRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/UpdateInstructorIDsResponse"}}}
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Statistics and seven-day registration trend",
                "security": [{"AdminID": [], "AdminPassword": []}, {"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DashboardSummary"}}}
            }
        },
        "/user-logs": {
            "get": {
                "tags": ["UserLogs"],
                "summary": "List user logs",
                "security": [{"AdminID": [], "AdminPassword": []}, {"BearerAuth": []}],
                "parameters": [
                    {"name": "userId", "in": "query", "type": "string"},
                    {"name": "action", "in": "query", "type": "string", "enum": ["login", "logout", "attendance_marked", "profile_updated", "failed_login"]},
                    {"name": "since", "in": "query", "type": "string", "format": "date-time"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/UserLog"}}}}
            }
        }
    },
    "definitions": {
        "ErrorBody": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "code": {"type": "string"}
            }
        },
        "AdminLoginRequest": {
            "type": "object",
            "required": ["adminId", "password"],
            "properties": {
                "adminId": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "AdminLoginResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "token": {"type": "string"},
                "expiresAt": {"type": "string", "format": "date-time"}
            }
        },
        "InstructorLoginRequest": {
            "type": "object",
            "required": ["instructorId", "password"],
            "properties": {
                "instructorId": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "StudentLoginRequest": {
            "type": "object",
            "required": ["studentId", "password"],
            "properties": {
                "studentId": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "LogoutRequest": {
            "type": "object",
            "properties": {
                "instructorId": {"type": "string"},
                "studentId": {"type": "string"}
            }
        },
        "Identity": {
            "type": "object",
            "properties": {
                "idNumber": {"type": "string"},
                "fullName": {"type": "string"}
            }
        },
        "LoginResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "instructor": {"$ref": "#/definitions/Identity"},
                "student": {"$ref": "#/definitions/Identity"},
                "token": {"type": "string"}
            }
        },
        "Account": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "idNumber": {"type": "string"},
                "fullName": {"type": "string"},
                "course": {"type": "string"},
                "year": {"type": "string"},
                "section": {"type": "string"},
                "department": {"type": "string"},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "CreateAccountRequest": {
            "type": "object",
            "required": ["idNumber", "fullName", "password"],
            "properties": {
                "idNumber": {"type": "string"},
                "fullName": {"type": "string"},
                "password": {"type": "string"},
                "course": {"type": "string"},
                "year": {"type": "string"},
                "section": {"type": "string"},
                "department": {"type": "string"}
            }
        },
        "UpdateAccountRequest": {
            "type": "object",
            "required": ["idNumber", "fullName"],
            "properties": {
                "idNumber": {"type": "string"},
                "fullName": {"type": "string"}
            }
        },
        "Schedule": {
            "type": "object",
            "required": ["day", "startTime", "endTime"],
            "properties": {
                "day": {"type": "string", "enum": ["Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"]},
                "startTime": {"type": "string", "example": "8:00 AM"},
                "endTime": {"type": "string", "example": "9:30 AM"}
            }
        },
        "CourseInput": {
            "type": "object",
            "required": ["courseCode", "courseName", "instructor"],
            "properties": {
                "courseCode": {"type": "string"},
                "courseName": {"type": "string"},
                "instructor": {"type": "string", "description": "Instructor idNumber"},
                "room": {"type": "string"},
                "program": {"type": "string"},
                "yearSection": {"type": "string"},
                "schedules": {"type": "array", "items": {"$ref": "#/definitions/Schedule"}}
            }
        },
        "Course": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "courseCode": {"type": "string"},
                "courseName": {"type": "string"},
                "instructor": {"type": "string"},
                "instructorName": {"type": "string"},
                "room": {"type": "string"},
                "program": {"type": "string"},
                "yearSection": {"type": "string"},
                "schedules": {"type": "array", "items": {"$ref": "#/definitions/Schedule"}},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "UpdateInstructorIDsRequest": {
            "type": "object",
            "required": ["instructorName", "instructorId"],
            "properties": {
                "instructorName": {"type": "string"},
                "instructorId": {"type": "string"}
            }
        },
        "UpdateInstructorIDsResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "modified": {"type": "integer"}
            }
        },
        "TrendPoint": {
            "type": "object",
            "properties": {
                "label": {"type": "string", "example": "03/10"},
                "date": {"type": "string", "format": "date-time"},
                "count": {"type": "integer"}
            }
        },
        "DashboardSummary": {
            "type": "object",
            "properties": {
                "statistics": {
                    "type": "object",
                    "properties": {
                        "students": {"type": "integer"},
                        "instructors": {"type": "integer"},
                        "courses": {"type": "integer"}
                    }
                },
                "trend": {"type": "array", "items": {"$ref": "#/definitions/TrendPoint"}},
                "generatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "UserLog": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userId": {"type": "string"},
                "role": {"type": "string"},
                "action": {"type": "string"},
                "details": {"type": "string"},
                "ipAddress": {"type": "string"},
                "attemptedId": {"type": "string"},
                "timestamp": {"type": "string", "format": "date-time"},
                "createdAt": {"type": "string", "format": "date-time"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
