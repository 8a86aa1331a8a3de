package common

// resumeSchema is the JSON Schema every resume document is validated
// against before a store write. It is deliberately permissive about
// content (all fields optional, dates free-form) and strict about shape
// (lists must be lists, strings must be strings).
const resumeSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "Resume",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "id": {"type": "string"},
    "title": {"type": "string"},
    "template": {"type": "string"},
    "themeColor": {"type": "string", "pattern": "^$|^#[0-9a-fA-F]{6}$"},
    "firstName": {"type": "string"},
    "lastName": {"type": "string"},
    "jobTitle": {"type": "string"},
    "address": {"type": "string"},
    "phone": {"type": "string"},
    "email": {"type": "string"},
    "githubUrl": {"type": "string"},
    "linkedinUrl": {"type": "string"},
    "portfolioUrl": {"type": "string"},
    "summary": {"type": "string"},
    "experience": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "properties": {
          "title": {"type": "string"},
          "companyName": {"type": "string"},
          "city": {"type": "string"},
          "state": {"type": "string"},
          "startDate": {"type": "string"},
          "endDate": {"type": "string"},
          "currentlyWorking": {"type": "boolean"},
          "workSummary": {"type": "string"}
        }
      }
    },
    "education": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "properties": {
          "universityName": {"type": "string"},
          "degree": {"type": "string"},
          "major": {"type": "string"},
          "grade": {"type": "string"},
          "gradeType": {"type": "string", "enum": ["", "CGPA", "GPA", "Percentage"]},
          "startDate": {"type": "string"},
          "endDate": {"type": "string"},
          "description": {"type": "string"}
        }
      }
    },
    "skills": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "properties": {
          "name": {"type": "string"},
          "rating": {"type": "integer", "minimum": 0, "maximum": 5}
        }
      }
    },
    "projects": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "properties": {
          "projectName": {"type": "string"},
          "techStack": {"type": "string"},
          "projectSummary": {"type": "string"},
          "githubLink": {"type": "string"},
          "deployedLink": {"type": "string"}
        }
      }
    },
    "certifications": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "properties": {
          "name": {"type": "string"},
          "issuer": {"type": "string"},
          "date": {"type": "string"}
        }
      }
    }
  }
}`
