package gpu

// Attribute locations shared by chunkVertexShader and ChunkRenderer.
const (
	locPosition    = 0
	locNormal      = 1
	locTexCoord    = 2
	locTranslation = 3
	locRotation    = 4
	locScale       = 5
)

const chunkVertexShader = `#version 410 core
layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec2 aUV;
layout(location = 3) in vec3 iTranslation;
layout(location = 4) in vec4 iRotation;
layout(location = 5) in vec3 iScale;

uniform mat4 proj;
uniform mat4 view;

out vec3 vNormal;
out vec2 vUV;

vec3 rotate(vec4 q, vec3 v) {
	return v + 2.0 * cross(q.xyz, cross(q.xyz, v) + q.w * v);
}

void main() {
	vec3 world = rotate(iRotation, aPos * iScale) + iTranslation;
	vNormal = rotate(iRotation, aNormal);
	vUV = aUV;
	gl_Position = proj * view * vec4(world, 1.0);
}
`

const chunkFragmentShader = `#version 410 core
in vec3 vNormal;
in vec2 vUV;

uniform vec3 lightDir;
uniform vec3 materialColor;

out vec4 FragColor;

void main() {
	float diffuse = max(dot(normalize(vNormal), normalize(lightDir)), 0.0);
	// darken the border of each merged quad
	float edge = step(0.02, min(min(vUV.x, vUV.y), min(1.0 - vUV.x, 1.0 - vUV.y)));
	vec3 color = materialColor * (0.35 + 0.65 * diffuse) * mix(0.8, 1.0, edge);
	FragColor = vec4(color, 1.0);
}
`
