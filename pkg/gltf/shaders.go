package gltf

// Embedded GLSL sources for the glTF 1.0 technique boilerplate. The
// 1.0 binary container carries its shaders inside the body buffer,
// referenced through KHR_binary_glTF bufferViews.

const vertexColorVertexShaderSource = `precision highp float;

attribute vec3 a_position;
attribute vec3 a_normal;
attribute vec4 a_color;

uniform mat4 u_modelViewMatrix;
uniform mat4 u_projectionMatrix;
uniform mat3 u_normalMatrix;

varying vec3 v_normal;
varying vec4 v_color;

void main(void) {
    v_normal = u_normalMatrix * a_normal;
    v_color = a_color;
    gl_Position = u_projectionMatrix * u_modelViewMatrix * vec4(a_position, 1.0);
}
`

const vertexColorFragmentShaderSource = `precision highp float;

varying vec3 v_normal;
varying vec4 v_color;

void main(void) {
    vec3 normal = normalize(v_normal);
    float lambert = max(dot(normal, vec3(0.0, 0.0, 1.0)), 0.0);
    vec3 color = v_color.rgb * (0.3 + 0.7 * lambert);
    gl_FragColor = vec4(color, v_color.a);
}
`

const materialColorVertexShaderSource = `precision highp float;

attribute vec3 a_position;
attribute vec3 a_normal;

uniform mat4 u_modelViewMatrix;
uniform mat4 u_projectionMatrix;
uniform mat3 u_normalMatrix;

varying vec3 v_normal;

void main(void) {
    v_normal = u_normalMatrix * a_normal;
    gl_Position = u_projectionMatrix * u_modelViewMatrix * vec4(a_position, 1.0);
}
`

const materialColorFragmentShaderSource = `precision highp float;

varying vec3 v_normal;

uniform vec4 u_diffuse;
uniform vec4 u_specular;
uniform float u_shininess;

void main(void) {
    vec3 normal = normalize(v_normal);
    float lambert = max(dot(normal, vec3(0.0, 0.0, 1.0)), 0.0);
    vec3 color = u_diffuse.rgb * (0.3 + 0.7 * lambert);
    gl_FragColor = vec4(color, u_diffuse.a);
}
`

// legacyShader pairs a shader name with its source and GL type.
type legacyShader struct {
	name   string
	source string
	glType int
}

// legacyShaders lists the shader blobs in the order they are appended
// to the body, matching the bufferViews registered for them.
var legacyShaders = []legacyShader{
	{name: "vertexColorFragmentShader", source: vertexColorFragmentShaderSource, glType: 35632},
	{name: "vertexColorVertexShader", source: vertexColorVertexShaderSource, glType: 35633},
	{name: "materialColorFragmentShader", source: materialColorFragmentShaderSource, glType: 35632},
	{name: "materialColorVertexShader", source: materialColorVertexShaderSource, glType: 35633},
}
